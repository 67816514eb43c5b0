// Package cli is the flowctl operator tool: it imports, lists and summarizes
// a user's tasks straight against the configured database, and runs a focus
// timer in the terminal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dbadapter "github.com/mew228/Flowstate/internal/adapter/db"
	"github.com/mew228/Flowstate/internal/adapter/prefs"
	"github.com/mew228/Flowstate/internal/app/live"
	"github.com/mew228/Flowstate/internal/app/service"
	"github.com/mew228/Flowstate/internal/config"
	"github.com/mew228/Flowstate/internal/core/ports"
)

// Runtime is what a command needs to reach a user's tasks.
type Runtime struct {
	Tasks    ports.TaskService
	Location *time.Location
	Close    func() error
}

// Opener builds a Runtime. Commands open it lazily so that help and focus
// never touch the database.
type Opener func(ctx context.Context) (*Runtime, error)

func NewRootCommand(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flowctl",
		Short:         "flowctl - Flowstate task board operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newImportCommand(open))
	rootCmd.AddCommand(newListCommand(open))
	rootCmd.AddCommand(newStatsCommand(open))
	rootCmd.AddCommand(newFocusCommand())

	return rootCmd
}

// OpenFromEnv wires the same storage the API uses. The payment gate is not
// applied: operators act on behalf of any user.
func OpenFromEnv(_ context.Context) (*Runtime, error) {
	cfg := config.LoadConfig()

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	loc := cfg.Location()
	preferences := prefs.NewFileStore(cfg.PreferencesDir)
	taskRepository := dbadapter.NewTaskRepository(db)
	billingService := service.NewBillingService(preferences, cfg.PaymentLink, false)
	taskService := service.NewTaskService(taskRepository, live.NewHub(taskRepository), billingService).
		WithClock(func() time.Time { return time.Now().In(loc) })

	return &Runtime{
		Tasks:    taskService,
		Location: loc,
		Close: func() error {
			taskService.Close()
			return db.Close()
		},
	}, nil
}

func withRuntime(cmd *cobra.Command, open Opener, run func(rt *Runtime) error) (err error) {
	rt, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return run(rt)
}

func requireUser(userID string) error {
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}
