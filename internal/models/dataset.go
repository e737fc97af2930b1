package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dataset is a persisted snapshot of an enriched event set.
type Dataset struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	TotalEvents  int       `json:"total_events"`
	TotalPosts   int       `json:"total_posts"`
	TotalComment int       `json:"total_comments" gorm:"column:total_comments"`
	CreatedAt    time.Time `json:"created_at"`

	Events []DatasetEvent `json:"-" gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate generates a UUID if not provided
func (d *Dataset) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// DatasetEvent is one enriched event row as stored. Emotion scores are kept
// as a JSON blob since the label set is classifier-defined.
type DatasetEvent struct {
	RowID     uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	DatasetID string `json:"-" gorm:"index;not null"`

	EventID   string   `json:"id" gorm:"column:event_id;index"`
	Type      string   `json:"type"`
	ParentID  *string  `json:"parent_id"`
	ReplyTo   *string  `json:"reply_to"`
	Author    *string  `json:"author" gorm:"index"`
	Title     *string  `json:"title"`
	Content   string   `json:"content"`
	URL       string   `json:"url"`
	Timestamp *float64 `json:"timestamp"`
	Source    string   `json:"source" gorm:"index"`
	Subreddit *string  `json:"subreddit"`
	Upvotes   *int     `json:"upvotes"`

	Topic           string  `json:"topic"`
	TopicConfidence float64 `json:"topic_confidence"`
	EmotionsJSON    string  `json:"-" gorm:"column:emotions;type:text"`
}
