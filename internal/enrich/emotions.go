package enrich

import (
	"context"
	"sort"

	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/telemetry"
)

// maxClassifierChars is the classifier's input-length constraint; longer
// content is truncated before classification.
const maxClassifierChars = 512

// ApplyEmotions classifies every event's content and attaches one score per
// emotion label. The label set is the union over all results; rows where the
// classifier omitted a label get 0.0, so columns are consistent across the
// table. Returns the sorted label set.
func ApplyEmotions(
	ctx context.Context,
	events []models.Event,
	registry *Registry,
	batchSize int,
) ([]string, error) {
	if len(events) == 0 {
		return nil, nil
	}

	ctx, span := telemetry.TraceEnrichment(ctx, "emotions", len(events))
	defer span.End()

	texts := make([]string, len(events))
	for i := range events {
		texts[i] = truncateRunes(events[i].Content, maxClassifierChars)
	}

	results, err := inBatches(ctx, "classify", texts, batchSize, registry.Classifier().Classify)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	labelSet := make(map[string]struct{})
	for _, scores := range results {
		for label := range scores {
			labelSet[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for i := range events {
		emotions := make(map[string]float64, len(labels))
		for _, label := range labels {
			emotions[label] = results[i][label]
		}
		events[i].Emotions = emotions
	}
	return labels, nil
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
