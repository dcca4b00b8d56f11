// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package htmlconv

import "github.com/pdiddy/docx2html/pkg/types"

// listState tracks the list container currently open in the output stream.
// At most one list is open at a time; current is ListNone when closed.
type listState struct {
	current types.ListKind
}

// item appends the lines for one list item of the given kind, opening or
// switching the container as needed.
func (s *listState) item(lines []string, kind types.ListKind, content string) []string {
	if s.current != kind {
		lines = s.flush(lines)
		lines = append(lines, "<"+kind.String()+">")
		s.current = kind
	}
	return append(lines, "<li>"+content+"</li>")
}

// flush closes the open list, if any. It must run before any non-list block
// and at end of stream.
func (s *listState) flush(lines []string) []string {
	if s.current == types.ListNone {
		return lines
	}
	lines = append(lines, "</"+s.current.String()+">")
	s.current = types.ListNone
	return lines
}
