package duration

import "github.com/spf13/pflag"

var _ pflag.Value = (*Duration)(nil)

// Set must have pointer receiver to validate and set the value.
func (d *Duration) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Type is only used in help text.
func (d *Duration) Type() string {
	return "duration"
}

// FlagVar defines a duration flag on fs with the given default.
func FlagVar(fs *pflag.FlagSet, p *Duration, name string, value Duration, usage string) {
	*p = value
	fs.Var(p, name, usage)
}

// FlagVarP is like FlagVar but also registers a one-letter shorthand.
func FlagVarP(fs *pflag.FlagSet, p *Duration, name, shorthand string, value Duration, usage string) {
	*p = value
	fs.VarP(p, name, shorthand, usage)
}
