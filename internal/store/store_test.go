package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(id string, generatedAt time.Time) *ReportRecord {
	return &ReportRecord{
		ID:           id,
		MachineLabel: "My PC",
		Hostname:     "desk-01",
		GeneratedAt:  generatedAt,
		Path:         "result/hardware_report_My_PC_20250314_092653.md",
		Domains:      []string{"cpu", "ram"},
		IncludeAll:   true,
		SizeBytes:    42,
		Body:         "# Hardware Report\n",
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleRecord("r-1", time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	require.NoError(t, s.SaveReport(ctx, want))

	got, err := s.GetReport(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, want.MachineLabel, got.MachineLabel)
	assert.Equal(t, want.Hostname, got.Hostname)
	assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, want.Path, got.Path)
	assert.Equal(t, want.Domains, got.Domains)
	assert.True(t, got.IncludeAll)
	assert.False(t, got.Detailed)
	assert.Equal(t, want.SizeBytes, got.SizeBytes)
	assert.Equal(t, want.Body, got.Body)
}

func TestGetReportNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetReport(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReportsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("r-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.SaveReport(ctx, rec))
	}

	records, err := s.ListReports(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "r-4", records[0].ID)
	assert.Equal(t, "r-0", records[4].ID)
	// List queries do not load bodies.
	assert.Empty(t, records[0].Body)

	page, err := s.ListReports(ctx, Filter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "r-3", page[0].ID)
	assert.Equal(t, "r-2", page[1].ID)
}

func TestListReportsByHostname(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("r-a", time.Now())
	require.NoError(t, s.SaveReport(ctx, rec))
	other := sampleRecord("r-b", time.Now())
	other.Hostname = "desk-02"
	require.NoError(t, s.SaveReport(ctx, other))

	records, err := s.ListReports(ctx, Filter{Hostname: "desk-02"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r-b", records[0].ID)
}

func TestPurgeBefore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cutoff := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveReport(ctx, sampleRecord("old", cutoff.Add(-time.Hour))))
	require.NoError(t, s.SaveReport(ctx, sampleRecord("new", cutoff.Add(time.Hour))))

	n, err := s.PurgeBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.GetReport(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetReport(ctx, "new")
	assert.NoError(t, err)

	count, err := s.CountReports(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
