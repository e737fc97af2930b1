package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birchwood/ethnograph/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTopUsers(t *testing.T) {
	events := []models.Event{
		{Author: strPtr("alice"), Source: models.SourceReddit},
		{Author: strPtr("alice"), Source: models.SourceReddit},
		{Author: strPtr("bob"), Source: models.SourceBoards},
		{Author: nil, Source: models.SourceReddit},
	}

	users := TopUsers(events)
	require.Len(t, users, 2, "rows without an author are dropped")
	assert.Equal(t, TopUser{Author: "alice", Source: models.SourceReddit, Count: 2}, users[0])
	assert.Equal(t, TopUser{Author: "bob", Source: models.SourceBoards, Count: 1}, users[1])
}

func TestPerUserStats(t *testing.T) {
	events := []models.Event{
		{Author: strPtr("alice"), Type: models.EventTypePost},
		{Author: strPtr("alice"), Type: models.EventTypeComment},
		{Author: strPtr("alice"), Type: models.EventTypeComment},
		{Author: strPtr("bob"), Type: models.EventTypeComment},
	}

	users := PerUserStats(events, DefaultStopwords())
	require.Len(t, users, 2)

	// Sorted ascending by comment_post_ratio: alice 2/1=2, bob 1/max(0,1)=1.
	assert.Equal(t, "bob", users[0].Author)
	assert.InDelta(t, 1.0, users[0].CommentPostRatio, 1e-9)
	assert.InDelta(t, 1.0, users[0].CommentShare, 1e-9)

	assert.Equal(t, "alice", users[1].Author)
	assert.Equal(t, 1, users[1].Posts)
	assert.Equal(t, 2, users[1].Comments)
	assert.InDelta(t, 2.0, users[1].CommentPostRatio, 1e-9)
	assert.InDelta(t, 2.0/3.0, users[1].CommentShare, 1e-9)
}

func TestVocabRichnessFloor(t *testing.T) {
	longText := strings.Repeat("different words keep arriving constantly everywhere ", 5)

	events := []models.Event{
		{Author: strPtr("wordy"), Type: models.EventTypePost, Content: longText},
		{Author: strPtr("terse"), Type: models.EventTypePost, Content: "short note"},
	}

	users := PerUserStats(events, map[string]struct{}{})
	require.Len(t, users, 2)

	byAuthor := make(map[string]UserStats)
	for _, u := range users {
		byAuthor[u.Author] = u
	}

	require.NotNil(t, byAuthor["wordy"].Vocab, "authors at or above the token floor get vocab rows")
	assert.Nil(t, byAuthor["terse"].Vocab, "authors below the token floor do not")

	vocab := byAuthor["wordy"].Vocab
	assert.Equal(t, 30, vocab.TotalWords)
	assert.Equal(t, 6, vocab.UniqueWords)
	assert.InDelta(t, 0.2, vocab.VocabRichness, 1e-9)
	assert.InDelta(t, 30.0, vocab.AvgWordsPerEvent, 1e-9)
}

func TestBuildInteractionGraph(t *testing.T) {
	events := []models.Event{
		{ID: "p1", Author: strPtr("alice"), Type: models.EventTypePost},
		{ID: "c1", Author: strPtr("bob"), Type: models.EventTypeComment, ReplyTo: strPtr("p1")},
		{ID: "c2", Author: strPtr("bob"), Type: models.EventTypeComment, ReplyTo: strPtr("p1")},
		{ID: "c3", Author: strPtr("alice"), Type: models.EventTypeComment, ReplyTo: strPtr("c1")},
		{ID: "c4", Author: strPtr("alice"), Type: models.EventTypeComment, ReplyTo: strPtr("p1")},
		{ID: "c5", Author: strPtr("carol"), Type: models.EventTypeComment, ReplyTo: strPtr("missing")},
	}

	graph := BuildInteractionGraph(events)

	assert.Equal(t, 2, graph["bob"]["alice"])
	assert.Equal(t, 1, graph["alice"]["bob"])
	assert.Empty(t, graph["alice"]["alice"], "self-replies are skipped")
	assert.Contains(t, graph, "carol", "authors with no resolvable edges still appear as nodes")
	assert.Empty(t, graph["carol"])
}
