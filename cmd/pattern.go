package cmd

import (
	"fmt"

	"github.com/jparise/hdur/duration"
	"github.com/spf13/cobra"
)

func newPatternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pattern",
		Short: "Print a regular expression matching valid durations",
		Long: `Print a case-insensitive regular expression for schema validators and
other tools. The expression does not reject a unit given twice; use
"hdur check" for that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), duration.Pattern)
			return err
		},
	}
}
