package connectors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardsThreadHTML = `<html><body>
<div class="PageTitle"><h1>Rent increases in the city</h1></div>
<div class="postbit-header">Posted 15-03-2024 3:04PM by someone</div>
<span class="userinfo-username-title">thread_author</span>
<div class="Message userContent">Opening post text here.</div>
<ul>
  <li class="ItemComment" id="Comment_100">
    <span class="userinfo-username-title">replier_one</span>
    <span class="DateCreated">15-03-2024 4:30PM</span>
    <div class="Message userContent"><blockquote>quoted text that must go</blockquote>First reply text.</div>
  </li>
  <li class="ItemComment" id="Comment_101">
    <span class="userinfo-username-title">replier_two</span>
    <span class="DateCreated">15-03-2024 5:00PM</span>
    <div class="Message userContent">Second reply text.</div>
  </li>
</ul>
</body></html>`

func boardsCategoryHTML(threadURL string) string {
	return fmt.Sprintf(`<html><body>
<a class="threadbit-threadlink" href="%s">Rent increases in the city</a>
</body></html>`, threadURL)
}

func TestBoardsNewPosts(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	threadURL := srv.URL + "/discussion/12345/rent-increases"
	mux.HandleFunc("/categories/accommodation-property/p1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardsCategoryHTML(threadURL))
	})
	mux.HandleFunc("/discussion/12345/rent-increases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardsThreadHTML)
	})

	conn := NewBoardsConnector()
	conn.baseURL = srv.URL

	posts, err := conn.NewPosts(context.Background(), "accommodation-property", 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "12345", post.ID, "thread id comes from the discussion URL")
	require.NotNil(t, post.Title)
	assert.Equal(t, "Rent increases in the city", *post.Title)
	require.NotNil(t, post.Author)
	assert.Equal(t, "thread_author", *post.Author)
	assert.Equal(t, "Opening post text here.", post.Content)
	require.NotNil(t, post.Timestamp, "header timestamp must parse")

	require.Len(t, post.Comments, 2)
}

func TestBoardsCommentsStripQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardsThreadHTML)
	}))
	defer srv.Close()

	conn := NewBoardsConnector()
	conn.baseURL = srv.URL

	doc, err := conn.fetchDocument(context.Background(), srv.URL+"/discussion/12345/x")
	require.NoError(t, err)

	comments := conn.parsePageComments(doc, "12345")
	require.Len(t, comments, 2)

	first := comments[0]
	assert.Equal(t, "Comment_100", first.ID)
	require.NotNil(t, first.Author)
	assert.Equal(t, "replier_one", *first.Author)
	assert.Equal(t, "First reply text.", first.Content, "blockquotes belong to the quoted commenter")
	assert.Equal(t, "12345", first.PostID)
	require.NotNil(t, first.Timestamp)
}

func TestBoardsTimestampLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, boardsThreadHTML)
	}))
	defer srv.Close()

	conn := NewBoardsConnector()
	conn.baseURL = srv.URL

	doc, err := conn.fetchDocument(context.Background(), srv.URL+"/discussion/12345/x")
	require.NoError(t, err)

	post := conn.parseThread(doc, srv.URL+"/discussion/12345/x")
	require.NotNil(t, post.Timestamp)

	// 15-03-2024 3:04PM UTC
	assert.InDelta(t, 1710515040.0, *post.Timestamp, 0.5)
}
