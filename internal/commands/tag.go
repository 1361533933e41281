package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagTagColor string

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the acting account's tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		tag, err := orch.Users.AddTag(ctx, user.ID, args[0], flagTagColor)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render("Added tag ") + renderLabel(tag.Name, tag.Color))
	},
}

var tagListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tags",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		tags, err := orch.Users.Tags(ctx, user.ID)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		if len(tags) == 0 {
			fmt.Println("No tags yet. Use 'taskhub tag add <name> --color \"#rrggbb\"' to create one.")
			return
		}

		for _, t := range tags {
			fmt.Printf("%s %s\n", renderLabel(t.Name, t.Color), mutedStyle.Render(t.Color))
		}
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "rm [name]",
	Aliases: []string{"remove"},
	Short:   "Remove a tag",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := actingUser(ctx, orch)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		if err := orch.Users.RemoveTag(ctx, user.ID, args[0]); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Removed tag %s", args[0])))
	},
}

func init() {
	tagAddCmd.Flags().StringVar(&flagTagColor, "color", "", "Tag colour as #rrggbb (required)")
	_ = tagAddCmd.MarkFlagRequired("color")

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}
