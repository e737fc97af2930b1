package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birchwood/ethnograph/internal/errors"
	"github.com/birchwood/ethnograph/internal/models"
)

func enrichedEvent(id, content, source string, at time.Time) models.Event {
	ts := at.UTC()
	epoch := float64(ts.Unix())
	return models.Event{
		ID:        id,
		Type:      models.EventTypePost,
		Content:   content,
		Timestamp: &epoch,
		Source:    source,
		Date:      ts.Format("2006-01-02"),
		DT:        &ts,
		Hour:      ts.Hour(),
		Weekday:   ts.Weekday().String(),
		Topic:     models.TopicMisc,
		Emotions:  map[string]float64{"neutral": 1.0},
	}
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	base := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		enrichedEvent("a", "Housing in Cork is expensive", models.SourceReddit, base),
		enrichedEvent("b", "Bus timetable changed again", models.SourceBoards, base.Add(24*time.Hour)),
		enrichedEvent("c", "Match report from cork city", models.SourceBoards, base.Add(48*time.Hour)),
	}
	return NewManagerFromEnriched(events, []string{"neutral"}, Options{})
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	mgr := testManager(t)

	result := mgr.Search("CORK")
	assert.Equal(t, 2, result.Rows)

	mgr.Reset()
	result = mgr.Search("cork")
	assert.Equal(t, 2, result.Rows)
}

func TestFiltersCompose(t *testing.T) {
	mgr := testManager(t)

	// Narrow by source first, then by text: conjunctive.
	result, err := mgr.FilterBySources(map[string]bool{models.SourceBoards: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)

	searched := mgr.Search("cork")
	assert.Equal(t, 1, searched.Rows)
	assert.Equal(t, "c", searched.Data[0].ID)
}

func TestFilterByTimeRangeInclusive(t *testing.T) {
	mgr := testManager(t)
	start := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC)

	// Bounds are inclusive: events exactly at start and end both survive.
	result := mgr.FilterByTimeRange(start, end)
	assert.Equal(t, 2, result.Rows)
}

func TestFilterByTimeRangeSkipsMissingTimestamps(t *testing.T) {
	events := []models.Event{
		{ID: "no-dt", Type: models.EventTypePost, Hour: -1},
	}
	mgr := NewManagerFromEnriched(events, nil, Options{})

	result := mgr.FilterByTimeRange(time.Unix(0, 0), time.Now())
	assert.Zero(t, result.Rows, "rows without a parseable timestamp never match a time filter")
}

func TestFilterBySourcesRejectsEmptySelection(t *testing.T) {
	mgr := testManager(t)

	for _, selection := range []map[string]bool{
		nil,
		{},
		{models.SourceReddit: false, models.SourceBoards: false},
	} {
		_, err := mgr.FilterBySources(selection)
		require.Error(t, err)
		apiErr, ok := err.(*errors.APIError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidFilter, apiErr.Code)
		assert.Len(t, mgr.Events(), 3, "a rejected filter leaves the view unchanged")
	}
}

func TestResetRestoresPristine(t *testing.T) {
	mgr := testManager(t)

	mgr.Search("housing")
	require.Len(t, mgr.Events(), 1)

	mgr.Reset()
	assert.Len(t, mgr.Events(), 3)
	assert.Equal(t, mgr.Pristine(), mgr.Events())
}

func TestResetAfterEmptyView(t *testing.T) {
	mgr := testManager(t)

	result := mgr.Search("no such phrase anywhere")
	assert.Zero(t, result.Rows)

	mgr.Reset()
	assert.Len(t, mgr.Events(), 3, "reset recovers even from an empty view")
}

func TestHeatmapAlwaysFullGrid(t *testing.T) {
	mgr := testManager(t)
	mgr.Search("no matches at all")

	stats := mgr.TimeAnalysis()
	require.Len(t, stats.WeekdayHourHeatmap, 7)
	for _, row := range stats.WeekdayHourHeatmap {
		assert.Len(t, row.Hours, 24)
	}
}

func TestSummaryOnFilteredView(t *testing.T) {
	mgr := testManager(t)

	full := mgr.Summary()
	assert.Equal(t, 3, full.TotalEvents)

	mgr.Search("cork")
	filtered := mgr.Summary()
	assert.Equal(t, 2, filtered.TotalEvents, "aggregations run over the working view")
}
