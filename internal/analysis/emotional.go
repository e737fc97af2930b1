package analysis

import (
	"sort"

	"github.com/birchwood/ethnograph/internal/models"
)

// Emotion categories dropped from topic profiles: neutral dominates most
// text and surprise is too noisy to interpret.
var excludedTopicEmotions = map[string]struct{}{
	"neutral":  {},
	"surprise": {},
}

// AvgEmotionByTopic computes the mean of each emotion column grouped by
// topic, excluding the Misc bucket and the neutral/surprise categories.
// Each group carries its event count n.
func AvgEmotionByTopic(events []models.Event) []TopicEmotions {
	type agg struct {
		sums map[string]float64
		n    int
	}
	groups := make(map[string]*agg)

	for i := range events {
		e := &events[i]
		if e.Topic == "" || e.Topic == models.TopicMisc {
			continue
		}
		g, ok := groups[e.Topic]
		if !ok {
			g = &agg{sums: make(map[string]float64)}
			groups[e.Topic] = g
		}
		g.n++
		for label, score := range e.Emotions {
			if _, skip := excludedTopicEmotions[label]; skip {
				continue
			}
			g.sums[label] += score
		}
	}

	result := make([]TopicEmotions, 0, len(groups))
	for topic, g := range groups {
		means := make(map[string]float64, len(g.sums))
		for label, sum := range g.sums {
			means[label] = sum / float64(g.n)
		}
		result = append(result, TopicEmotions{Topic: topic, N: g.n, Emotions: means})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Topic < result[j].Topic })
	return result
}
