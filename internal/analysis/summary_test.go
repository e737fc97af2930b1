package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birchwood/ethnograph/internal/models"
)

func TestSummarize(t *testing.T) {
	t1 := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)

	events := []models.Event{
		{Type: models.EventTypePost, Author: strPtr("alice"), Source: models.SourceReddit, DT: &t1},
		{Type: models.EventTypeComment, Author: strPtr("alice"), Source: models.SourceReddit, DT: &t2},
		{Type: models.EventTypeComment, Author: strPtr("bob"), Source: models.SourceBoards},
		{Type: models.EventTypeComment, Author: strPtr("carol"), Source: models.SourceBoards},
	}

	s := Summarize(events)
	assert.Equal(t, 4, s.TotalEvents)
	assert.Equal(t, 1, s.TotalPosts)
	assert.Equal(t, 3, s.TotalComments)
	assert.Equal(t, 3, s.UniqueUsers)
	assert.InDelta(t, 3.0, s.CommentsPerPost, 1e-9)

	// bob and carol each appear once: 2 of 3 users are lurkers.
	assert.InDelta(t, 0.67, s.LurkerRatio, 1e-9)

	require.NotNil(t, s.TimeRange)
	assert.Equal(t, t1.Unix(), s.TimeRange.Start)
	assert.Equal(t, t2.Unix(), s.TimeRange.End)

	assert.Equal(t, []string{models.SourceBoards, models.SourceReddit}, s.Sources)
}

func TestSummarizeNoPosts(t *testing.T) {
	events := []models.Event{
		{Type: models.EventTypeComment, Author: strPtr("alice")},
		{Type: models.EventTypeComment, Author: strPtr("bob")},
	}

	s := Summarize(events)
	assert.Equal(t, 0, s.TotalPosts)
	assert.InDelta(t, 2.0, s.CommentsPerPost, 1e-9, "divides by max(posts, 1)")
	assert.Nil(t, s.TimeRange, "no timestamps means no range")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalEvents)
	assert.Zero(t, s.UniqueUsers)
	assert.Zero(t, s.LurkerRatio)
	assert.Nil(t, s.TimeRange)
	assert.Empty(t, s.Sources)
}
