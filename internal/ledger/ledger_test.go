package ledger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docx2html/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.LedgerConfig{Dir: filepath.Join(t.TempDir(), "ledger"), MaxResults: 10})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntry(path string, status types.ConversionStatus, at time.Time) Entry {
	return Entry{
		SourcePath:    path,
		SourceModTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		OutputPath:    path + ".html",
		Status:        status,
		Stats:         types.MarkupStats{Headings: 1, Paragraphs: 3, FAQs: 1, Lists: 1, ListItems: 2, Tables: 1},
		Bytes:         420,
		ConvertedAt:   at,
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ledger")
	s, err := Open(types.LedgerConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, 50, s.maxResults)

	var count int
	require.NoError(t, s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions'`,
	).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, sampleEntry("docs/a.docx", types.ConversionDone, base)))
	require.NoError(t, s.Record(ctx, sampleEntry("docs/b.docx", types.ConversionDone, base.Add(time.Minute))))
	failed := sampleEntry("other/c.docx", types.ConversionFailed, base.Add(2*time.Minute))
	failed.Error = "loading other/c.docx: open: not a ZIP archive"
	failed.Stats = types.MarkupStats{}
	require.NoError(t, s.Record(ctx, failed))
	require.NoError(t, s.Record(ctx, sampleEntry("docs/résumé/d.docx", types.ConversionDone, base.Add(-time.Minute))))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "other/c.docx", entries[0].SourcePath, "most recent first")
	assert.Equal(t, failed.Error, entries[0].Error)
	assert.Equal(t, "docs/a.docx", entries[2].SourcePath)
	assert.Equal(t, 3, entries[2].Stats.Paragraphs)
	assert.Equal(t, 2, entries[2].Stats.ListItems)
	assert.Equal(t, 420, entries[2].Bytes)
	assert.True(t, entries[2].ConvertedAt.Equal(base))

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "status", filter: Filter{Status: types.ConversionFailed}, want: 1},
		{name: "prefix", filter: Filter{PathPrefix: "docs/"}, want: 3},
		{name: "non-ascii prefix", filter: Filter{PathPrefix: "docs/résumé/"}, want: 1},
		{name: "non-ascii prefix mismatch", filter: Filter{PathPrefix: "docs/resume/"}, want: 0},
		{name: "limit", filter: Filter{MaxResults: 1}, want: 1},
		{name: "no match", filter: Filter{Status: types.ConversionSkipped}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestRecordUpserts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	e := sampleEntry("a.docx", types.ConversionFailed, time.Time{})
	require.NoError(t, s.Record(ctx, e))
	e.Status = types.ConversionDone
	require.NoError(t, s.Record(ctx, e))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.ConversionDone, entries[0].Status)
	assert.False(t, entries[0].ConvertedAt.IsZero())
}

func TestRecordRejectsEmptyPath(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Record(context.Background(), Entry{}))
}

func TestUnchanged(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	e := sampleEntry("a.docx", types.ConversionDone, time.Now())
	require.NoError(t, s.Record(ctx, e))

	ok, err := s.Unchanged(ctx, "a.docx", e.SourceModTime)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Unchanged(ctx, "a.docx", e.SourceModTime.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, ok, "modified source")

	ok, err = s.Unchanged(ctx, "missing.docx", e.SourceModTime)
	require.NoError(t, err)
	assert.False(t, ok, "unknown source")

	e.Status = types.ConversionFailed
	require.NoError(t, s.Record(ctx, e))
	ok, err = s.Unchanged(ctx, "a.docx", e.SourceModTime)
	require.NoError(t, err)
	assert.False(t, ok, "failed conversions are retried")
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, sampleEntry("a.docx", types.ConversionDone, time.Now())))

	yamlPath, err := s.ExportYAML(ctx, Filter{}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), "ledger.yaml"), yamlPath)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []Entry
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "a.docx", fromYAML[0].SourcePath)

	out := t.TempDir()
	jsonPath, err := s.ExportJSON(ctx, Filter{Status: types.ConversionFailed}, out)
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []Entry
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Empty(t, fromJSON)
	assert.JSONEq(t, "[]", string(data))
}
