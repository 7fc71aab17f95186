package checker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jparise/hdur/duration"
	"github.com/jparise/hdur/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestChecker() (*Checker, *bytes.Buffer) {
	stderr := &bytes.Buffer{}
	return New(output.New(&bytes.Buffer{}, stderr, false, false)), stderr
}

func TestCheckValidFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.dur"), "# comment\n1h\n\n  2h 30m  \n")
	writeFile(t, filepath.Join(dir, "b.dur"), "1yr2mo3w4d5h6m7s8ms9microsec10ns\r\n10 μs\r\n")

	c, stderr := newTestChecker()
	summary, err := c.Check(context.Background(), &Options{
		Paths:   []string{filepath.Join(dir, "*.dur")},
		Jobs:    4,
		Verbose: true,
	})

	require.NoError(t, err)
	assert.Equal(t, Summary{Files: 2, Durations: 4, Problems: 0}, summary)
	assert.Contains(t, stderr.String(), "Checked 4 durations in 2 files")
}

func TestCheckReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dur")
	writeFile(t, path, "1h\n5s5sec\n# skipped\n23yays\n  \n1h, 2m\n")

	c, stderr := newTestChecker()
	summary, err := c.Check(context.Background(), &Options{Paths: []string{path}, Jobs: 1})

	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, Summary{Files: 1, Durations: 4, Problems: 3}, summary)

	out := stderr.String()
	assert.Contains(t, out, path+":2:4: duplicate unit Second\n    5s5sec\n       ^^^\n")
	assert.Contains(t, out, path+":4:3: unknown unit \"yays\"\n    23yays\n      ^^^^\n")
	assert.Contains(t, out, path+":6:3: trailing garbage \", 2m\"\n")

	// Problems within a file keep their line order.
	assert.Less(t, strings.Index(out, ":2:4:"), strings.Index(out, ":4:3:"))
	assert.Less(t, strings.Index(out, ":4:3:"), strings.Index(out, ":6:3:"))
}

func TestCheckLongLines(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.dur")
	writeFile(t, good, "1s\n")

	t.Run("longer than the default scanner buffer", func(t *testing.T) {
		path := filepath.Join(dir, "wide.dur")
		writeFile(t, path, "5s5s\n"+strings.Repeat(" ", 70000)+"\n"+strings.Repeat(" ", 70000)+"1h\n")

		c, stderr := newTestChecker()
		summary, err := c.Check(context.Background(), &Options{Paths: []string{path, good}, Jobs: 1})

		require.ErrorIs(t, err, ErrInvalid)
		assert.Equal(t, Summary{Files: 2, Durations: 3, Problems: 1}, summary)
		assert.Contains(t, stderr.String(), path+":1:4: duplicate unit Second")
	})

	t.Run("longer than the maximum line", func(t *testing.T) {
		path := filepath.Join(dir, "huge.dur")
		writeFile(t, path, "5s5s\n"+strings.Repeat("1", maxLineSize+1)+"\n")

		c, stderr := newTestChecker()
		summary, err := c.Check(context.Background(), &Options{Paths: []string{path, good}, Jobs: 1})

		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "failed to read 1 of 2 files")
		assert.Equal(t, Summary{Files: 1, Durations: 2, Problems: 1}, summary)
		assert.Contains(t, stderr.String(), path+":1:4: duplicate unit Second")
		assert.Contains(t, stderr.String(), "Warning: "+path+": bufio.Scanner: token too long")
	})
}

func TestCheckGlobDoubleStar(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.dur"), "1s\n")
	writeFile(t, filepath.Join(dir, "x", "y", "deep.dur"), "2s\n")
	writeFile(t, filepath.Join(dir, "x", "ignored.txt"), "not a duration\n")

	c, _ := newTestChecker()
	summary, err := c.Check(context.Background(), &Options{
		Paths: []string{filepath.Join(dir, "**", "*.dur")},
		Jobs:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 2, summary.Durations)
}

func TestCheckDeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.dur")
	writeFile(t, path, "1s\n")

	c, _ := newTestChecker()
	summary, err := c.Check(context.Background(), &Options{
		Paths: []string{path, filepath.Join(dir, "*.dur"), path},
		Jobs:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Files)
}

func TestCheckMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "a.dur")
	missing := filepath.Join(dir, "missing.dur")
	writeFile(t, present, "1s\n")

	t.Run("some missing", func(t *testing.T) {
		c, stderr := newTestChecker()
		summary, err := c.Check(context.Background(), &Options{Paths: []string{present, missing}, Jobs: 1})

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "failed to read 1 of 2 files")
		assert.Equal(t, 1, summary.Files)
		assert.Contains(t, stderr.String(), "Warning: "+missing)
	})

	t.Run("missing with problems", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.dur")
		writeFile(t, bad, "1s1s\n")

		c, _ := newTestChecker()
		_, err := c.Check(context.Background(), &Options{Paths: []string{bad, missing}, Jobs: 1})

		require.ErrorIs(t, err, ErrInvalid)
		assert.Contains(t, err.Error(), "failed to read 1 of 2 files")
	})

	t.Run("all missing", func(t *testing.T) {
		c, _ := newTestChecker()
		_, err := c.Check(context.Background(), &Options{Paths: []string{missing}, Jobs: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read all 1 files")
	})
}

func TestCheckNoMatches(t *testing.T) {
	c, stderr := newTestChecker()
	summary, err := c.Check(context.Background(), &Options{
		Paths: []string{filepath.Join(t.TempDir(), "*.dur")},
		Jobs:  1,
	})

	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Contains(t, stderr.String(), "no files match")
	assert.Contains(t, stderr.String(), "No files to check")
}

func TestCheckInvalidPattern(t *testing.T) {
	c, _ := newTestChecker()
	_, err := c.Check(context.Background(), &Options{Paths: []string{"[unclosed"}, Jobs: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestCheckCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.dur")
	writeFile(t, path, "1s\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newTestChecker()
	_, err := c.Check(ctx, &Options{Paths: []string{path}, Jobs: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.dur")
	writeFile(t, path, "1s\n2s 2s\n")

	checked, problems, err := checkFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, checked)
	require.Len(t, problems, 1)
	assert.Equal(t, 2, problems[0].Line)
	assert.Equal(t, path, problems[0].Path)
	assert.ErrorIs(t, problems[0].Err, duration.ErrDuplicateUnit)
}

func TestIsGlob(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"plain.dur", false},
		{"dir/plain.dur", false},
		{"*.dur", true},
		{"**/x.dur", true},
		{"file?.dur", true},
		{"file[0-9].dur", true},
		{"*.{dur,txt}", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isGlob(tt.pattern), "isGlob(%q)", tt.pattern)
	}
}
