package file

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Text    string
	Added   int
	Removed int
}

// UnifiedDiff diffs before and after with git-style a/ and b/ headers.
// A file that did not exist before is diffed against /dev/null.
func UnifiedDiff(rel, before, after string, created bool) Diff {
	a, b := splitLines(before), splitLines(after)

	fromFile := "a/" + rel
	if created {
		fromFile = "/dev/null"
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: fromFile,
		ToFile:   "b/" + rel,
		Context:  3,
	})
	if err != nil {
		text = ""
	}

	d := Diff{Text: text}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.Removed += op.I2 - op.I1
			d.Added += op.J2 - op.J1
		case 'd':
			d.Removed += op.I2 - op.I1
		case 'i':
			d.Added += op.J2 - op.J1
		}
	}
	return d
}

// splitLines keeps line terminators and gives the last line one, so it
// compares equal whether or not the file ends in a newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
