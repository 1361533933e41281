package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakmount/taskhub/internal/taskhub/app"
	"github.com/oakmount/taskhub/internal/taskhub/domain"
	"github.com/oakmount/taskhub/internal/taskhub/orchestrator"
)

var version = "dev"

var (
	flagBackend   string
	flagDBFile    string
	flagUsersFile string
	flagTasksFile string
	flagUser      string
)

var rootCmd = &cobra.Command{
	Use:   "taskhub",
	Short: "A task management service and CLI",
	Long: `taskhub manages per-user tasks, categories and tags on top of a
pluggable storage backend (SQLite or flat JSON files). Run the HTTP API
with 'taskhub serve' or work with the data directly from the terminal.`,
}

// openOrchestrator builds the storage stack from the environment, letting
// command-line flags override individual settings.
func openOrchestrator() (*orchestrator.Orchestrator, error) {
	cfg := app.LoadConfig().OrchestratorConfig()

	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagDBFile != "" {
		cfg.DatabaseFile = flagDBFile
	}
	if flagUsersFile != "" {
		cfg.UsersFile = flagUsersFile
	}
	if flagTasksFile != "" {
		cfg.TasksFile = flagTasksFile
	}

	return orchestrator.New(cfg)
}

// actingUser resolves the --user flag to an account. Task, category and
// tag commands act on behalf of this account.
func actingUser(ctx context.Context, orch *orchestrator.Orchestrator) (domain.User, error) {
	if flagUser == "" {
		return domain.User{}, fmt.Errorf("specify the acting account with --user")
	}
	return orch.Users.GetByUsername(ctx, flagUser)
}

// SetVersion sets the version information
func SetVersion(v string) {
	version = v
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: sqlite or json (default from env)")
	rootCmd.PersistentFlags().StringVar(&flagDBFile, "db", "", "SQLite database file (sqlite backend)")
	rootCmd.PersistentFlags().StringVar(&flagUsersFile, "users-file", "", "Users JSON document (json backend)")
	rootCmd.PersistentFlags().StringVar(&flagTasksFile, "tasks-file", "", "Tasks JSON document (json backend)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Username to act as")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskhub %s\n", version)
	},
}
