// Package dataset owns the unified event table: normalization of raw
// post/comment collections into events, and the working-view manager that
// holds the enriched table, its pristine snapshot, and the filter state.
package dataset

import (
	"encoding/json"

	"github.com/birchwood/ethnograph/internal/models"
)

// Normalize flattens a collection of post records (each optionally carrying
// nested comments) into a single event table. Posts become type="post"
// events with a nil parent; comments are exploded out of their post with
// parent_id set to the containing post's id. A nested comment that is not a
// JSON object or has no content is dropped silently. Row order carries no
// meaning.
func Normalize(posts []models.PostRecord) []models.Event {
	events := make([]models.Event, 0, len(posts))

	for i := range posts {
		p := &posts[i]
		events = append(events, models.Event{
			ID:        p.ID,
			Type:      models.EventTypePost,
			ParentID:  nil,
			Author:    p.Author,
			Title:     p.Title,
			Content:   p.Content,
			URL:       p.URL,
			Timestamp: p.Timestamp,
			Source:    p.Source,
			Subreddit: p.Subreddit,
			Upvotes:   p.Upvotes,
			Hour:      -1,
		})

		for _, raw := range p.Comments {
			c, ok := parseComment(raw)
			if !ok || c.Content == "" {
				continue
			}
			parentID := p.ID
			if parentID == "" {
				parentID = c.PostID
			}
			events = append(events, models.Event{
				ID:        c.ID,
				Type:      models.EventTypeComment,
				ParentID:  &parentID,
				ReplyTo:   c.ReplyTo,
				Author:    c.Author,
				Content:   c.Content,
				Timestamp: c.Timestamp,
				Source:    c.Source,
				Hour:      -1,
			})
		}
	}
	return events
}

// parseComment rejects nested values that are not JSON objects (nulls,
// strings, arrays) without failing the surrounding post.
func parseComment(raw json.RawMessage) (models.CommentRecord, bool) {
	trimmed := trimLeftSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.CommentRecord{}, false
	}
	var c models.CommentRecord
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.CommentRecord{}, false
	}
	return c, true
}

func trimLeftSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t' || b[0] == '\n' || b[0] == '\r') {
		b = b[1:]
	}
	return b
}
