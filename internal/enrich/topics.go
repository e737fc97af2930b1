package enrich

import (
	"context"
	"fmt"

	"github.com/birchwood/ethnograph/internal/models"
	"github.com/birchwood/ethnograph/internal/nlp"
	"github.com/birchwood/ethnograph/internal/telemetry"
)

// DefaultConfidenceThreshold is the similarity below which an event is
// labeled Misc instead of its best-matching topic.
const DefaultConfidenceThreshold = 0.3

// ApplyTopics embeds every event's composite text, scores it against the
// taxonomy vectors by cosine similarity, and assigns topic and
// topic_confidence. An event whose best similarity falls below threshold is
// labeled Misc while keeping its true sub-threshold confidence. Equal best
// scores resolve to the first taxonomy entry.
func ApplyTopics(
	ctx context.Context,
	events []models.Event,
	taxonomy []models.TopicEntry,
	registry *Registry,
	threshold float64,
	batchSize int,
) error {
	if len(events) == 0 || len(taxonomy) == 0 {
		return nil
	}

	ctx, span := telemetry.TraceEnrichment(ctx, "topics", len(events))
	defer span.End()

	topicVecs, err := registry.TopicVectors(ctx, taxonomy)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	if len(topicVecs) != len(taxonomy) {
		err := fmt.Errorf("taxonomy embedding mismatch: %d topics, %d vectors", len(taxonomy), len(topicVecs))
		telemetry.RecordSpanError(span, err)
		return err
	}

	texts := make([]string, len(events))
	for i := range events {
		texts[i] = events[i].CompositeText()
	}

	vecs, err := inBatches(ctx, "embed", texts, batchSize, registry.Embedder().Embed)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	for i := range events {
		best := 0
		bestScore := nlp.CosineSimilarity(vecs[i], topicVecs[0])
		for t := 1; t < len(topicVecs); t++ {
			if score := nlp.CosineSimilarity(vecs[i], topicVecs[t]); score > bestScore {
				best = t
				bestScore = score
			}
		}

		events[i].TopicConfidence = bestScore
		if bestScore < threshold {
			events[i].Topic = models.TopicMisc
		} else {
			events[i].Topic = taxonomy[best].Label
		}
	}
	return nil
}
