package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jparise/hdur/internal/checker"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	jobs       int
	verbose    bool
	hyperlinks bool
}

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Validate files of durations, one per line",
		Long: `Check every line of each file as a duration. Blank lines and lines
starting with "#" are skipped.

<path> is a file or a glob pattern:
  *              Match any characters (e.g., "*.txt")
  **             Match across directories (e.g., "config/**/*.txt")
  ?              Match single character
  [...]          Match character class
  {...}          Match alternatives (e.g., "*.{txt,dur}")

Problems are reported as path:line:column.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.jobs < 1 || opts.jobs > 100 {
				return fmt.Errorf("--jobs must be between 1 and 100, got %d", opts.jobs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := checker.New(global.newOutput(cmd, opts.hyperlinks))
			_, err := c.Check(ctx, &checker.Options{
				Paths:   args,
				Jobs:    opts.jobs,
				Verbose: opts.verbose,
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 10,
		"maximum files read concurrently")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"print a summary after checking")
	cmd.Flags().BoolVar(&opts.hyperlinks, "hyperlinks", false,
		"link problem locations to their files")

	return cmd
}
