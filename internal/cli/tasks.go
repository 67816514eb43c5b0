package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mew228/Flowstate/internal/adapter/importer"
	"github.com/mew228/Flowstate/internal/core/domain"
	"github.com/mew228/Flowstate/internal/core/query"
)

func newImportCommand(open Opener) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import tasks from a YAML file into a user's board",
		Long: `Reads a YAML document with a top-level "tasks" list and creates every
entry for the given user. Entries marked completed are completed right after
creation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			return withRuntime(cmd, open, func(rt *Runtime) error {
				count, err := importer.Import(cmd.Context(), rt.Tasks, userID, f, rt.Location)
				if count > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks for %s\n", count, userID)
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner of the imported tasks")
	return cmd
}

func newListCommand(open Opener) *cobra.Command {
	var (
		userID   string
		category string
		search   string
		status   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a user's tasks the way the dashboard orders them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}

			return withRuntime(cmd, open, func(rt *Runtime) error {
				tasks, err := rt.Tasks.View(cmd.Context(), userID, query.ViewParams{
					Category: category,
					Search:   search,
					Status:   domain.ParseStatusFilter(status),
				})
				if err != nil {
					return err
				}

				if len(tasks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
					return nil
				}
				for _, task := range tasks {
					fmt.Fprintln(cmd.OutOrStdout(), formatTask(task))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner of the tasks")
	cmd.Flags().StringVar(&category, "category", domain.CategoryAll, "category filter")
	cmd.Flags().StringVar(&search, "q", "", "case-insensitive search text")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusAll), "all, active or completed")
	return cmd
}

func newStatsCommand(open Opener) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print completion statistics for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(userID); err != nil {
				return err
			}

			return withRuntime(cmd, open, func(rt *Runtime) error {
				stats, err := rt.Tasks.Stats(cmd.Context(), userID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:      %d\n", stats.TotalCount)
				fmt.Fprintf(out, "Completed:  %d\n", stats.CompletedCount)
				fmt.Fprintf(out, "Pending:    %d\n", stats.PendingCount)
				fmt.Fprintf(out, "Completion: %d%%\n", stats.CompletionRate)
				fmt.Fprintf(out, "Overdue:    %d\n", stats.OverdueCount)

				scale := stats.MaxDayCount()
				for _, day := range stats.Weekly {
					bar := strings.Repeat("#", day.Count*20/scale)
					fmt.Fprintf(out, "%s %-20s %d\n", day.Label, bar, day.Count)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "owner of the tasks")
	return cmd
}

func formatTask(task domain.Task) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %-6s %-10s %s", mark, task.Priority, task.Category, task.Text)
	if task.DueDate != nil {
		fmt.Fprintf(&b, " (due %s)", task.DueDate.Format("2006-01-02"))
	}
	if n := len(task.Subtasks); n > 0 {
		fmt.Fprintf(&b, " [%d/%d]", task.CompletedSubtasks(), n)
	}
	return b.String()
}
