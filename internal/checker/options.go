package checker

// Options contains all check parameters.
type Options struct {
	Paths   []string // Files or doublestar glob patterns
	Jobs    int      // Maximum files read concurrently
	Verbose bool     // Report a summary even when everything is valid
}

// Summary counts what a check saw.
type Summary struct {
	Files     int // Files read successfully
	Durations int // Duration lines checked
	Problems  int // Duration lines rejected
}
