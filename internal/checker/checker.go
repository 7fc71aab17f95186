// Package checker validates files of duration strings, one per line.
package checker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/hdur/duration"
	"github.com/jparise/hdur/internal/output"
	"golang.org/x/sync/semaphore"
)

// ErrInvalid is returned when at least one duration was rejected.
var ErrInvalid = errors.New("invalid durations found")

// maxLineSize is the longest line checkFile reads.
const maxLineSize = 1 << 20

// Checker orchestrates reading and validating files.
type Checker struct {
	output *output.Output
}

// New creates a new Checker that reports through out.
func New(out *output.Output) *Checker {
	return &Checker{output: out}
}

// Check validates every duration line in the files named by opts.Paths.
// Blank lines and lines starting with '#' are skipped.
func (c *Checker) Check(ctx context.Context, opts *Options) (Summary, error) {
	paths, err := c.expandPaths(opts.Paths)
	if err != nil {
		return Summary{}, err
	}
	if len(paths) == 0 {
		c.output.Warningf("No files to check")
		return Summary{}, nil
	}

	var wg sync.WaitGroup
	var files, durations, problems, failures atomic.Int32
	sem := semaphore.NewWeighted(int64(max(opts.Jobs, 1)))

	for _, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return Summary{}, err
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			checked, found, err := checkFile(path)
			durations.Add(int32(checked))
			problems.Add(int32(len(found)))
			c.output.Problems(found)
			if err != nil {
				failures.Add(1)
				c.output.Warningf("%s: %v", path, err)
				return
			}
			files.Add(1)
		}(path)
	}

	wg.Wait()

	summary := Summary{
		Files:     int(files.Load()),
		Durations: int(durations.Load()),
		Problems:  int(problems.Load()),
	}

	failed := int(failures.Load())
	if failed == len(paths) && summary.Problems == 0 {
		return summary, fmt.Errorf("failed to read all %d files", len(paths))
	}
	if opts.Verbose {
		c.output.Infof("Checked %d durations in %d files", summary.Durations, summary.Files)
	}

	var errs []error
	if summary.Problems > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d", ErrInvalid, summary.Problems, summary.Durations))
	}
	if failed > 0 {
		errs = append(errs, fmt.Errorf("failed to read %d of %d files", failed, len(paths)))
	}
	return summary, errors.Join(errs...)
}

// expandPaths resolves glob patterns and drops duplicates while preserving
// input order. Plain paths are passed through so a missing file is reported
// when it is read.
func (c *Checker) expandPaths(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			c.output.Warningf("%s: no files match", pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// checkFile parses every duration line in path. It returns the number of
// lines checked and the rejected ones, including those found before a read
// error.
func checkFile(path string) (int, []output.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	var checked int
	var problems []output.Problem

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		checked++
		if _, err := duration.Parse(line); err != nil {
			var perr *duration.ParseError
			if !errors.As(err, &perr) {
				return checked, problems, fmt.Errorf("line %d: %w", lineNo, err)
			}
			problems = append(problems, output.Problem{Path: path, Line: lineNo, Err: perr})
		}
	}
	if err := scanner.Err(); err != nil {
		return checked, problems, err
	}

	return checked, problems, nil
}
