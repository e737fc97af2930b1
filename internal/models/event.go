package models

import (
	"time"
)

// EventType discriminates the two record shapes that share the event table.
type EventType string

const (
	EventTypePost    EventType = "post"
	EventTypeComment EventType = "comment"
)

// Known source names emitted by the connectors.
const (
	SourceReddit  = "Reddit"
	SourceBoards  = "Boards.ie"
	SourceYouTube = "YouTube"
)

// TopicMisc is assigned when the best taxonomy match falls below the
// confidence threshold.
const TopicMisc = "Misc"

// Event is the unified row type: one normalized post or comment.
//
// IDs are best-effort — they are unique within a source but not guaranteed
// globally unique, and comments may reference parents that no longer exist.
// Optional fields are pointers so "missing" stays distinguishable from zero.
type Event struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	ParentID *string   `json:"parent_id"`
	ReplyTo  *string   `json:"reply_to"`
	Author   *string   `json:"author"`
	Title    *string   `json:"title"`
	Content  string    `json:"content"`
	URL      string    `json:"url,omitempty"`
	// Timestamp is seconds since the Unix epoch. Nil when the source
	// failed to parse one.
	Timestamp *float64 `json:"timestamp"`
	Source    string   `json:"source"`

	// Source-specific optionals.
	Subreddit *string `json:"subreddit,omitempty"`
	Upvotes   *int    `json:"upvotes,omitempty"`

	// Derived fields, attached once by the enrichment stage.
	Date            string             `json:"date,omitempty"` // calendar day, "2006-01-02"
	DT              *time.Time         `json:"dt,omitempty"`   // timezone-aware instant (UTC)
	Hour            int                `json:"hour"`           // 0-23, -1 when the timestamp is missing
	Weekday         string             `json:"weekday,omitempty"`
	Topic           string             `json:"topic,omitempty"`
	TopicConfidence float64            `json:"topic_confidence"`
	Emotions        map[string]float64 `json:"emotions,omitempty"`
}

// AuthorName returns the author or "" for deleted/missing authors.
func (e *Event) AuthorName() string {
	if e.Author == nil {
		return ""
	}
	return *e.Author
}

// CompositeText is the text fed to topic embedding: "{title}. {content}"
// when a non-empty title exists, otherwise just the content.
func (e *Event) CompositeText() string {
	if e.Title != nil && *e.Title != "" {
		return *e.Title + ". " + e.Content
	}
	return e.Content
}
