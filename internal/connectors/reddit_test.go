package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birchwood/ethnograph/internal/models"
)

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func redditListingJSON(after string, ids ...string) string {
	children := ""
	for i, id := range ids {
		if i > 0 {
			children += ","
		}
		children += fmt.Sprintf(`{"data": {
			"id": %q, "author": "user_%s", "title": "Title %s",
			"selftext": "body %s", "url": "https://reddit.com/%s",
			"created_utc": 1710158400, "subreddit": "ireland", "ups": 42
		}}`, id, id, id, id, id)
	}
	return fmt.Sprintf(`{"data": {"after": %q, "children": [%s]}}`, after, children)
}

func TestRedditTopPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/ireland/top.json", r.URL.Path)
		assert.Equal(t, "week", r.URL.Query().Get("t"))
		writeJSON(w, redditListingJSON("", "aaa", "bbb"))
	}))
	defer srv.Close()

	conn := NewRedditConnector()
	conn.client.SetBaseURL(srv.URL)

	posts, err := conn.TopPosts(context.Background(), "ireland", 10, "week")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	post := posts[0]
	assert.Equal(t, "aaa", post.ID)
	assert.Equal(t, models.SourceReddit, post.Source)
	require.NotNil(t, post.Author)
	assert.Equal(t, "user_aaa", *post.Author)
	require.NotNil(t, post.Subreddit)
	assert.Equal(t, "ireland", *post.Subreddit)
	require.NotNil(t, post.Upvotes)
	assert.Equal(t, 42, *post.Upvotes)
	require.NotNil(t, post.Timestamp)
	assert.InDelta(t, 1710158400.0, *post.Timestamp, 0.5)
}

func TestRedditNewPostsPaginates(t *testing.T) {
	var afters []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		after := r.URL.Query().Get("after")
		afters = append(afters, after)
		switch after {
		case "":
			writeJSON(w, redditListingJSON("cursor1", "aaa", "bbb"))
		case "cursor1":
			writeJSON(w, redditListingJSON("", "ccc"))
		default:
			t.Fatalf("unexpected cursor %q", after)
		}
	}))
	defer srv.Close()

	conn := NewRedditConnector()
	conn.client.SetBaseURL(srv.URL)

	posts, err := conn.NewPosts(context.Background(), "ireland", 5)
	require.NoError(t, err)
	require.Len(t, posts, 3, "pagination follows the after cursor until exhausted")
	assert.Equal(t, []string{"", "cursor1"}, afters)
}

func TestRedditSearchPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/r/ireland/search.json", r.URL.Path)
		assert.Equal(t, "housing", r.URL.Query().Get("q"))
		assert.Equal(t, "on", r.URL.Query().Get("restrict_sr"))
		assert.Equal(t, "top", r.URL.Query().Get("sort"))
		writeJSON(w, redditListingJSON("", "found"))
	}))
	defer srv.Close()

	conn := NewRedditConnector()
	conn.client.SetBaseURL(srv.URL)

	posts, err := conn.SearchPosts(context.Background(), "ireland", "housing", 10, "day")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "found", posts[0].ID)
}

func TestRedditGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/someone/about.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"name": "someone", "created_utc": 1600000000.0, "total_karma": 999,
			},
		})
	}))
	defer srv.Close()

	conn := NewRedditConnector()
	conn.client.SetBaseURL(srv.URL)

	user, err := conn.GetUser(context.Background(), "someone")
	require.NoError(t, err)
	assert.Equal(t, "someone", user.Username)
	assert.Equal(t, int64(1600000000), user.CreatedUTC)
	require.NotNil(t, user.Karma)
	assert.Equal(t, 999, *user.Karma)
}

func TestRedditServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	conn := NewRedditConnector()
	conn.client.SetBaseURL(srv.URL)

	_, err := conn.TopPosts(context.Background(), "ireland", 10, "day")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
