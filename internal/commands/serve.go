package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakmount/taskhub/internal/taskhub/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Starts the taskhub HTTP API and blocks until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := app.LoadConfig()

		if flagBackend != "" {
			cfg.StorageBackend = flagBackend
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

		application, err := app.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
			os.Exit(1)
		}

		if err := application.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "application error: %v\n", err)
			os.Exit(1)
		}
	},
}
