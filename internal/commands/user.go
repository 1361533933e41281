package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagPassword string
	flagEmail    string
	flagFullName string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := orch.Users.Register(ctx, args[0], flagEmail, flagPassword, flagFullName)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Created account #%d: %s", user.ID, user.Username)))
	},
}

var userListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		users, err := orch.Users.List(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		if len(users) == 0 {
			fmt.Println("No accounts found. Use 'taskhub user add <username>' to create one.")
			return
		}

		fmt.Printf("%-4s %-20s %-30s %-20s %s\n", "ID", "USERNAME", "EMAIL", "NAME", "STATUS")
		fmt.Println(strings.Repeat("-", 84))
		for _, u := range users {
			status := "active"
			if u.Disabled {
				status = mutedStyle.Render("disabled")
			}
			fmt.Printf("%-4d %-20s %-30s %-20s %s\n", u.ID, u.Username, u.Email, u.FullName, status)
		}
	},
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate [username]",
	Short: "Disable an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		orch, err := openOrchestrator()
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}
		defer orch.Close()

		user, err := orch.Users.GetByUsername(ctx, args[0])
		if err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		if err := orch.Users.Deactivate(ctx, user.ID); err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
			return
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("Disabled account %s", user.Username)))
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account password (required)")
	userAddCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Account email")
	userAddCmd.Flags().StringVar(&flagFullName, "name", "", "Full name")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeactivateCmd)
}
