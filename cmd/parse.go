package cmd

import (
	"errors"
	"fmt"

	"github.com/jparise/hdur/duration"
	"github.com/jparise/hdur/internal/output"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	long      bool
	showZero  bool
	omit      unitListFlag
	normalize bool
	fields    bool
}

func newParseCmd(global *globalOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <duration>...",
		Short: "Print durations in canonical form",
		Long: `Parse each argument as a duration and print its canonical form, e.g.
"3 days 2 hours" becomes "3d2h". Invalid arguments are reported with a
caret under the offending text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := global.newOutput(cmd, false)
			return runParse(out, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.long, "long", "l", false,
		"use long unit names (e.g., \"2 hours\")")
	cmd.Flags().BoolVarP(&opts.showZero, "show-zero", "z", false,
		"include units whose value is zero")
	cmd.Flags().VarP(&opts.omit, "omit", "o",
		"units to leave out (e.g., ms,us,ns)")
	cmd.Flags().BoolVarP(&opts.normalize, "normalize", "n", false,
		"carry overflowing units (e.g., 90m becomes 1h30m)")
	cmd.Flags().BoolVarP(&opts.fields, "fields", "f", false,
		"print one line per unit instead of a single string")

	return cmd
}

func runParse(out *output.Output, opts *parseOptions, args []string) error {
	formatOpts := duration.FormatOptions{
		LongNames: opts.long,
		ShowZero:  opts.showZero,
		Omit:      duration.UnitSet(opts.omit),
	}

	var problems []output.Problem
	for _, arg := range args {
		d, err := duration.Parse(arg)
		if err != nil {
			var perr *duration.ParseError
			if !errors.As(err, &perr) {
				return err
			}
			problems = append(problems, output.Problem{Err: perr})
			continue
		}

		if opts.normalize {
			if d, err = d.Normalize(); err != nil {
				return fmt.Errorf("normalize %q: %w", arg, err)
			}
		}

		if opts.fields {
			out.Fields(d, opts.showZero)
		} else {
			out.Result(d.Format(formatOpts))
		}
	}

	out.Problems(problems)
	if len(problems) > 0 {
		return fmt.Errorf("%d of %d durations invalid", len(problems), len(args))
	}
	return nil
}
