// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/docx2html/pkg/types"
)

// Filter selects ledger entries.
type Filter struct {
	// Status restricts entries to one outcome.
	Status types.ConversionStatus

	// PathPrefix restricts entries to sources under a directory.
	PathPrefix string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// List returns entries matching f, most recent first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	maxResults := f.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT source_path, source_mod_time, output_path, status,
			paragraphs, tables, lists, list_items, headings, faqs, bytes, error, converted_at
		FROM conversions WHERE 1=1`)
	if f.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(f.Status))
	}
	if f.PathPrefix != "" {
		// substr counts characters, not bytes.
		qb.WriteString(` AND substr(source_path, 1, ?) = ?`)
		args = append(args, utf8.RuneCountInString(f.PathPrefix), f.PathPrefix)
	}
	qb.WriteString(` ORDER BY converted_at DESC, source_path LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                        Entry
			modTime, convertedAt     string
			status                   string
			outputPath, errorMessage sql.NullString
		)
		if err := rows.Scan(&e.SourcePath, &modTime, &outputPath, &status,
			&e.Stats.Paragraphs, &e.Stats.Tables, &e.Stats.Lists, &e.Stats.ListItems,
			&e.Stats.Headings, &e.Stats.FAQs, &e.Bytes, &errorMessage, &convertedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.SourceModTime = parseTime(modTime)
		e.ConvertedAt = parseTime(convertedAt)
		e.Status = types.ConversionStatus(status)
		e.OutputPath = outputPath.String
		e.Error = errorMessage.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
