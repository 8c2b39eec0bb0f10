// Package diff renders line-oriented differences between two generated files.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified compares current with proposed line by line and returns a unified-style
// listing, or "" when they are identical. Output longer than 10,000 lines is truncated.
func Unified(current, proposed []byte, currentLabel, proposedLabel string) string {
	if bytes.Equal(current, proposed) {
		return ""
	}

	dmp := diffmatchpatch.New()
	currentChars, proposedChars, lineIndex := dmp.DiffLinesToChars(string(current), string(proposed))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(currentChars, proposedChars, false), lineIndex)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", currentLabel)
	fmt.Fprintf(&buf, "+++ %s\n", proposedLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(current), countLines(proposed))

	written := 3
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix + line + "\n")
			written++
		}
	}
	return buf.String()
}

// Stats counts the inserted and deleted lines between current and proposed.
func Stats(current, proposed []byte) (inserted, deleted int) {
	dmp := diffmatchpatch.New()
	currentChars, proposedChars, lineIndex := dmp.DiffLinesToChars(string(current), string(proposed))
	for _, d := range dmp.DiffCharsToLines(dmp.DiffMain(currentChars, proposedChars, false), lineIndex) {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(splitLines(d.Text))
		case diffmatchpatch.DiffDelete:
			deleted += len(splitLines(d.Text))
		}
	}
	return inserted, deleted
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(data []byte) int {
	return len(splitLines(string(data)))
}
