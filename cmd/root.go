package cmd

import (
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/jparise/hdur/duration"
	"github.com/jparise/hdur/internal/output"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

func (c colorMode) enabled() bool {
	switch c {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return term.FromEnv().IsColorEnabled()
	}
}

// unitListFlag collects units given as a comma-separated list of aliases.
// Repeating the flag adds to the list.
type unitListFlag duration.UnitSet

func (f *unitListFlag) String() string {
	var names []string
	for _, u := range duration.Units() {
		if duration.UnitSet(*f).Has(u) {
			names = append(names, u.Symbol())
		}
	}
	return strings.Join(names, ",")
}

func (f *unitListFlag) Set(v string) error {
	set := duration.UnitSet(*f)
	for _, name := range strings.Split(v, ",") {
		u, err := duration.ParseUnit(name)
		if err != nil {
			return fmt.Errorf("invalid unit %q: must be one of y, mo, w, d, h, m, s, ms, us, ns or another alias", name)
		}
		set = set.Add(u)
	}
	*f = unitListFlag(set)
	return nil
}

func (f *unitListFlag) Type() string {
	return "units"
}

var version = "dev"

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	color colorMode
}

func (g *globalOptions) newOutput(cmd *cobra.Command, hyperlinks bool) *output.Output {
	return output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), g.color.enabled(), hyperlinks)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{color: colorAuto}

	rootCmd := &cobra.Command{
		Use:   "hdur",
		Short: "Parse, format, and validate human-readable durations",
		Long: `hdur works with composite durations such as "1yr2mo3w4d5h6m7s".

A duration is one or more <number><unit> pairs. Whitespace is allowed
between the number and the unit and between pairs, units are
case-insensitive, pairs may come in any order, and each unit may appear
only once. Weeks are stored as days.

Units:
  y   y, yr, yrs, year, years
  mo  mo, month, months
  w   w, wk, wks, week, weeks
  d   d, day, days
  h   h, hr, hrs, hour, hours
  m   m, min, mins, minute, minutes
  s   s, sec, secs, second, seconds
  ms  ms, msec, msecs, millisecond, milliseconds
  us  μs, us, usec, usecs, microsec, microsecs, microsecond, microseconds
  ns  ns, nsec, nsecs, nanosec, nanosecs, nanosecond, nanoseconds

Examples:
  hdur parse "2h 30m"
  hdur parse --long 1w3d
  hdur parse --normalize 90m
  hdur check "config/**/*.durations"
  hdur pattern`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Var(&opts.color, "color",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newCheckCmd(opts),
		newPatternCmd(),
	)

	return rootCmd
}

func Execute() error {
	return newRootCmd().Execute()
}
