package models

import "encoding/json"

// PostRecord is the raw post shape delivered by connectors and dataset
// uploads. Comments arrive nested and are kept raw so a malformed entry can
// be dropped without failing the whole post.
type PostRecord struct {
	ID        string            `json:"id"`
	Author    *string           `json:"author"`
	Title     *string           `json:"title"`
	Content   string            `json:"content"`
	URL       string            `json:"url"`
	Timestamp *float64          `json:"timestamp"`
	Source    string            `json:"source"`
	Subreddit *string           `json:"subreddit,omitempty"`
	Upvotes   *int              `json:"upvotes,omitempty"`
	Comments  []json.RawMessage `json:"comments,omitempty"`
}

// CommentRecord is the raw comment shape nested inside a post.
type CommentRecord struct {
	ID        string   `json:"id"`
	PostID    string   `json:"post_id"`
	Author    *string  `json:"author"`
	Content   string   `json:"content"`
	Timestamp *float64 `json:"timestamp"`
	ReplyTo   *string  `json:"reply_to"`
	Source    string   `json:"source"`
}

// UserRecord is the generic profile shape connectors return for author
// lookups.
type UserRecord struct {
	Username   string `json:"username"`
	CreatedUTC int64  `json:"created_utc"`
	Karma      *int   `json:"karma,omitempty"`
}

// TopicEntry is one entry of the domain topic taxonomy. The taxonomy is an
// ordered list so tie-breaks on equal similarity are deterministic.
type TopicEntry struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}
