// Package textdiff compares the plain text of a source document with the
// text recovered from its HTML rendering.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// ContextLines is the number of unchanged lines shown around each hunk.
const ContextLines = 3

// Unified returns a unified diff from a to b. Both inputs are NFC
// normalised and carriage returns are dropped before comparison. An empty
// result means the texts are equal.
func Unified(a, b, fromName, toName string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(normalize(a)),
		B:        difflib.SplitLines(normalize(b)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  ContextLines,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}
	return out, nil
}

// Equal reports whether a and b are identical after normalisation.
func Equal(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(s)
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
