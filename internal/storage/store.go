// Package storage persists enriched datasets so they can be reloaded
// without re-running enrichment. The in-memory working view remains the
// source of truth for analytics; this layer is strictly save/load.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/birchwood/ethnograph/internal/models"
	"gorm.io/gorm"
)

// Store wraps a gorm connection for dataset persistence.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on an initialized connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveDataset persists a named snapshot of an enriched event table. The
// write is transactional: either the dataset row and all event rows land,
// or nothing does.
func (s *Store) SaveDataset(name string, events []models.Event) (*models.Dataset, error) {
	var posts, comments int
	for i := range events {
		switch events[i].Type {
		case models.EventTypePost:
			posts++
		case models.EventTypeComment:
			comments++
		}
	}

	ds := &models.Dataset{
		Name:         name,
		TotalEvents:  len(events),
		TotalPosts:   posts,
		TotalComment: comments,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ds).Error; err != nil {
			return fmt.Errorf("failed to create dataset row: %w", err)
		}

		rows := make([]models.DatasetEvent, 0, len(events))
		for i := range events {
			row, err := toRow(ds.ID, &events[i])
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to insert event rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// ListDatasets returns saved datasets, newest first.
func (s *Store) ListDatasets() ([]models.Dataset, error) {
	var datasets []models.Dataset
	if err := s.db.Order("created_at DESC").Find(&datasets).Error; err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	return datasets, nil
}

// LoadDataset rebuilds the enriched event table of a saved dataset. The
// emotion label set is recovered from the stored rows.
func (s *Store) LoadDataset(id string) ([]models.Event, []string, error) {
	var ds models.Dataset
	if err := s.db.First(&ds, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}

	var rows []models.DatasetEvent
	if err := s.db.Where("dataset_id = ?", id).Order("row_id").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load event rows: %w", err)
	}

	events := make([]models.Event, 0, len(rows))
	labelSet := make(map[string]struct{})
	for i := range rows {
		event, err := fromRow(&rows[i])
		if err != nil {
			return nil, nil, err
		}
		for label := range event.Emotions {
			labelSet[label] = struct{}{}
		}
		events = append(events, event)
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return events, labels, nil
}

// DeleteDataset removes a saved dataset and its event rows.
func (s *Store) DeleteDataset(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dataset_id = ?", id).Delete(&models.DatasetEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete event rows: %w", err)
		}
		result := tx.Delete(&models.Dataset{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete dataset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func toRow(datasetID string, e *models.Event) (models.DatasetEvent, error) {
	emotions, err := json.Marshal(e.Emotions)
	if err != nil {
		return models.DatasetEvent{}, fmt.Errorf("failed to marshal emotions for event %q: %w", e.ID, err)
	}
	return models.DatasetEvent{
		DatasetID:       datasetID,
		EventID:         e.ID,
		Type:            string(e.Type),
		ParentID:        e.ParentID,
		ReplyTo:         e.ReplyTo,
		Author:          e.Author,
		Title:           e.Title,
		Content:         e.Content,
		URL:             e.URL,
		Timestamp:       e.Timestamp,
		Source:          e.Source,
		Subreddit:       e.Subreddit,
		Upvotes:         e.Upvotes,
		Topic:           e.Topic,
		TopicConfidence: e.TopicConfidence,
		EmotionsJSON:    string(emotions),
	}, nil
}

func fromRow(row *models.DatasetEvent) (models.Event, error) {
	event := models.Event{
		ID:              row.EventID,
		Type:            models.EventType(row.Type),
		ParentID:        row.ParentID,
		ReplyTo:         row.ReplyTo,
		Author:          row.Author,
		Title:           row.Title,
		Content:         row.Content,
		URL:             row.URL,
		Timestamp:       row.Timestamp,
		Source:          row.Source,
		Subreddit:       row.Subreddit,
		Upvotes:         row.Upvotes,
		Topic:           row.Topic,
		TopicConfidence: row.TopicConfidence,
		Hour:            -1,
	}
	if row.EmotionsJSON != "" {
		if err := json.Unmarshal([]byte(row.EmotionsJSON), &event.Emotions); err != nil {
			return models.Event{}, fmt.Errorf("failed to unmarshal emotions for event %q: %w", row.EventID, err)
		}
	}
	return event, nil
}
