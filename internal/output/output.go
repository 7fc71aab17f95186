// Package output writes results and diagnostics with optional color and
// hyperlink support.
package output

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jparise/hdur/duration"
	"github.com/mgutz/ansi"
)

// Output handles all output formatting with optional color and hyperlink support.
type Output struct {
	mu         sync.Mutex
	stdout     io.Writer
	stderr     io.Writer
	hyperlinks bool

	cyan   func(string) string
	green  func(string) string
	white  func(string) string
	yellow func(string) string
	red    func(string) string
}

// Problem is a rejected duration and where it came from.
type Problem struct {
	Path string // empty for command-line arguments
	Line int
	Err  *duration.ParseError
}

// New creates a new Output with optional color and hyperlink support.
func New(stdout, stderr io.Writer, colorize, hyperlinks bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout:     stdout,
		stderr:     stderr,
		hyperlinks: hyperlinks,
		cyan:       color("cyan"),
		green:      color("green+b"),
		white:      color("white"),
		yellow:     color("yellow"),
		red:        color("red+b"),
	}
}

func makeHyperlink(url, text string) string {
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// Result writes a formatted duration on its own line.
func (o *Output) Result(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.stdout, o.green(text))
}

// Fields writes one "unit value" line per entry, aligned on the name.
func (o *Output) Fields(d duration.Duration, showZero bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	units := duration.Units()
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if u == duration.Week {
			continue
		}
		v := d.Get(u)
		if v == 0 && !showZero {
			continue
		}
		fmt.Fprintf(o.stdout, "%s %s\n", o.cyan(fmt.Sprintf("%-12s", strings.ToLower(u.String()))), o.white(fmt.Sprint(v)))
	}
}

// Problems writes each problem as "path:line:col: reason" followed by the
// input and a caret under the offending text. The batch is written in one
// piece so concurrent callers do not interleave.
func (o *Output) Problems(problems []Problem) {
	if len(problems) == 0 {
		return
	}

	var b strings.Builder
	for _, p := range problems {
		o.writeProblem(&b, p)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	io.WriteString(o.stderr, b.String())
}

func (o *Output) writeProblem(b *strings.Builder, p Problem) {
	err := p.Err
	col := err.Column()

	var loc string
	if p.Path != "" {
		loc = fmt.Sprintf("%s:%s:%s: ", o.cyan(p.Path), o.yellow(fmt.Sprint(p.Line)), o.yellow(fmt.Sprint(col)))
		if o.hyperlinks {
			loc = makeHyperlink(fileURL(p.Path), loc)
		}
	}
	fmt.Fprintf(b, "%s%s\n", loc, o.red(err.Reason()))

	if err.Err == duration.ErrEmptyInput {
		return
	}
	fmt.Fprintf(b, "    %s\n", err.Input)
	fmt.Fprintf(b, "    %s%s\n", caretPadding(err.Input, err.Offset), o.red(caret(err.Text)))
}

// caretPadding returns whitespace as wide as input[:offset], keeping tabs so
// the caret lines up under the echoed input.
func caretPadding(input string, offset int) string {
	offset = min(max(offset, 0), len(input))
	var b strings.Builder
	for _, r := range input[:offset] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func caret(text string) string {
	return strings.Repeat("^", max(utf8.RuneCountInString(text), 1))
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}
