package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagCategoryColor string

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the acting account's categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a category",
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

		cat, err := orch.Users.AddCategory(ctx, user.ID, args[0], flagCategoryColor)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render("Added category ") + renderLabel(cat.Name, cat.Color))
	},
}

var categoryListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List categories",
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

		cats, err := orch.Users.Categories(ctx, user.ID)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		for _, c := range cats {
			fmt.Printf("%s %s\n", renderLabel(c.Name, c.Color), mutedStyle.Render(c.Color))
		}
	},
}

var categoryRemoveCmd = &cobra.Command{
	Use:     "rm [name]",
	Aliases: []string{"remove"},
	Short:   "Remove a category",
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

		if err := orch.Users.RemoveCategory(ctx, user.ID, args[0]); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Removed category %s", args[0])))
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&flagCategoryColor, "color", "", "Category colour as #rrggbb (required)")
	_ = categoryAddCmd.MarkFlagRequired("color")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryRemoveCmd)
}
