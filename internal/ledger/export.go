// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the entries matching f to dir/ledger.yaml and returns
// the written path. An empty dir uses the ledger directory.
func (s *Store) ExportYAML(ctx context.Context, f Filter, dir string) (string, error) {
	entries, err := s.exportEntries(ctx, f)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(dir, "ledger.yaml", data)
}

// ExportJSON writes the entries matching f to dir/ledger.json and returns
// the written path.
func (s *Store) ExportJSON(ctx context.Context, f Filter, dir string) (string, error) {
	entries, err := s.exportEntries(ctx, f)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(dir, "ledger.json", data)
}

func (s *Store) exportEntries(ctx context.Context, f Filter) ([]Entry, error) {
	f.MaxResults = exportLimit
	entries, err := s.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Store) writeExport(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = s.dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
