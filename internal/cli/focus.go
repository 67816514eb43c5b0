package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mew228/Flowstate/internal/core/focus"
)

func newFocusCommand() *cobra.Command {
	var (
		interval time.Duration
		step     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run one work session of the focus timer",
		Long: `Counts down a 25 minute work session and stops when the break starts.
--step sets how much timer time passes per tick, which is handy for demos.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 || step <= 0 {
				return fmt.Errorf("--interval and --step must be positive")
			}

			timer := focus.New()
			timer.Start()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", timer.Mode, formatRemaining(timer.Remaining))

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					fmt.Fprintf(cmd.OutOrStdout(), "stopped at %s, %d%% done\n", formatRemaining(timer.Remaining), int(timer.Progress()*100))
					return nil
				case <-ticker.C:
					if timer.Tick(step) {
						fmt.Fprintf(cmd.OutOrStdout(), "work session %d complete, %s %s\n", timer.Sessions, timer.Mode, formatRemaining(timer.Remaining))
						return nil
					}
					if timer.Remaining%time.Minute == 0 {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", timer.Mode, formatRemaining(timer.Remaining))
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "wall time between ticks")
	cmd.Flags().DurationVar(&step, "step", time.Second, "timer time consumed per tick")
	return cmd
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
