package connectors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birchwood/ethnograph/internal/models"
)

const youtubeSearchJSON = `{"items": [{
	"id": {"videoId": "vid123"},
	"snippet": {
		"title": "Housing crisis explained",
		"description": "A breakdown of the housing market.",
		"publishedAt": "2024-03-11T12:00:00Z",
		"channelTitle": "NewsChannel"
	}
}]}`

const youtubeCommentsJSON = `{"items": [{
	"id": "cmt1",
	"snippet": {"topLevelComment": {"snippet": {
		"textDisplay": "Great video",
		"authorDisplayName": "viewer_one",
		"publishedAt": "2024-03-11T13:00:00Z"
	}}}
}]}`

func TestYouTubeSearchVideos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "housing", r.URL.Query().Get("q"))
		assert.Equal(t, "video", r.URL.Query().Get("type"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		writeJSON(w, youtubeSearchJSON)
	})
	mux.HandleFunc("/commentThreads", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vid123", r.URL.Query().Get("videoId"))
		writeJSON(w, youtubeCommentsJSON)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := NewYouTubeConnector("test-key")
	conn.client.SetBaseURL(srv.URL)

	posts, err := conn.SearchVideos(context.Background(), "housing", 5, 100)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "vid123", post.ID)
	assert.Equal(t, models.SourceYouTube, post.Source)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid123", post.URL)
	require.NotNil(t, post.Title)
	assert.Equal(t, "Housing crisis explained", *post.Title)
	assert.Equal(t, "Housing crisis explained\n\nA breakdown of the housing market.", post.Content)
	require.NotNil(t, post.Timestamp)
	assert.InDelta(t, 1710158400.0, *post.Timestamp, 0.5)

	require.Len(t, post.Comments, 1)
	var comment models.CommentRecord
	require.NoError(t, json.Unmarshal(post.Comments[0], &comment))
	assert.Equal(t, "cmt1", comment.ID)
	assert.Equal(t, "vid123", comment.PostID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "viewer_one", *comment.Author)
}

func TestYouTubeCommentsDisabled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, youtubeSearchJSON)
	})
	mux.HandleFunc("/commentThreads", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	conn := NewYouTubeConnector("test-key")
	conn.client.SetBaseURL(srv.URL)

	posts, err := conn.SearchVideos(context.Background(), "housing", 5, 100)
	require.NoError(t, err, "videos with disabled comments are kept without them")
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].Comments)
}
