package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/birchwood/ethnograph/internal/models"
)

var weekdayOrder = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
	time.Sunday.String(),
}

// EventsPerDay counts events per calendar day, sorted by day. Rows with no
// parseable timestamp are skipped.
func EventsPerDay(events []models.Event) []DayCount {
	counts := make(map[string]int)
	for i := range events {
		if events[i].Date == "" {
			continue
		}
		counts[events[i].Date]++
	}

	days := make([]DayCount, 0, len(counts))
	for date, n := range counts {
		days = append(days, DayCount{Date: date, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// WeekdayHourHeatmap builds the 7x24 occurrence grid. Every weekday and
// every hour is present, zero-filled where no events landed.
func WeekdayHourHeatmap(events []models.Event) []WeekdayHours {
	grid := make(map[string][]int, len(weekdayOrder))
	for _, day := range weekdayOrder {
		grid[day] = make([]int, 24)
	}

	for i := range events {
		e := &events[i]
		if e.Weekday == "" || e.Hour < 0 || e.Hour > 23 {
			continue
		}
		if row, ok := grid[e.Weekday]; ok {
			row[e.Hour]++
		}
	}

	heatmap := make([]WeekdayHours, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		heatmap = append(heatmap, WeekdayHours{Weekday: day, Hours: grid[day]})
	}
	return heatmap
}

// Burstiness is stddev(daily counts) / max(mean(daily counts), 1), a
// coefficient-of-variation-like measure of day-to-day volatility.
func Burstiness(events []models.Event) float64 {
	days := EventsPerDay(events)
	if len(days) == 0 {
		return 0
	}

	var sum float64
	for _, d := range days {
		sum += float64(d.Count)
	}
	mean := sum / float64(len(days))

	var sqDiff float64
	for _, d := range days {
		diff := float64(d.Count) - mean
		sqDiff += diff * diff
	}
	stddev := math.Sqrt(sqDiff / float64(len(days)))

	return stddev / math.Max(mean, 1)
}

// ReplyTimeByEmotion computes reply latency for comments with a resolvable
// reply_to, grouped by the comment's dominant emotion. The dominant emotion
// is the highest-scoring column across every emotion column present.
// Replies whose parent cannot be located in the view are excluded.
func ReplyTimeByEmotion(events []models.Event) []ReplyTimeStats {
	idToTime := make(map[string]*time.Time, len(events))
	for i := range events {
		if events[i].ID != "" {
			idToTime[events[i].ID] = events[i].DT
		}
	}

	type agg struct {
		total float64
		n     int
	}
	groups := make(map[string]*agg)

	for i := range events {
		e := &events[i]
		if e.Type != models.EventTypeComment || e.ReplyTo == nil || *e.ReplyTo == "" {
			continue
		}
		if e.DT == nil || len(e.Emotions) == 0 {
			continue
		}
		parentTime, ok := idToTime[*e.ReplyTo]
		if !ok || parentTime == nil {
			continue
		}

		dominant := dominantEmotion(e.Emotions)
		if dominant == "" {
			continue
		}

		latency := e.DT.Sub(*parentTime).Seconds()
		g, ok := groups[dominant]
		if !ok {
			g = &agg{}
			groups[dominant] = g
		}
		g.total += latency
		g.n++
	}

	stats := make([]ReplyTimeStats, 0, len(groups))
	for emotion, g := range groups {
		stats = append(stats, ReplyTimeStats{
			Emotion:     emotion,
			MeanSeconds: g.total / float64(g.n),
			Count:       g.n,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Emotion < stats[j].Emotion })
	return stats
}

// dominantEmotion picks the emotion with the maximum score; equal scores
// resolve to the alphabetically first label so results are stable.
func dominantEmotion(scores map[string]float64) string {
	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best := ""
	bestScore := math.Inf(-1)
	for _, label := range labels {
		if scores[label] > bestScore {
			best = label
			bestScore = scores[label]
		}
	}
	return best
}
