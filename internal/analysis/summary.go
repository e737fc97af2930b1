package analysis

import (
	"math"
	"sort"

	"github.com/birchwood/ethnograph/internal/models"
)

// Summarize builds the dataset-level overview of the working view.
func Summarize(events []models.Event) Summary {
	var posts, comments int
	perAuthor := make(map[string]int)
	sourceSet := make(map[string]struct{})
	var tr *TimeRange

	for i := range events {
		e := &events[i]
		switch e.Type {
		case models.EventTypePost:
			posts++
		case models.EventTypeComment:
			comments++
		}
		if author := e.AuthorName(); author != "" {
			perAuthor[author]++
		}
		if e.Source != "" {
			sourceSet[e.Source] = struct{}{}
		}
		if e.DT != nil {
			ts := e.DT.Unix()
			if tr == nil {
				tr = &TimeRange{Start: ts, End: ts}
			} else {
				if ts < tr.Start {
					tr.Start = ts
				}
				if ts > tr.End {
					tr.End = ts
				}
			}
		}
	}

	lurkers := 0
	for _, n := range perAuthor {
		if n == 1 {
			lurkers++
		}
	}

	lurkerRatio := 0.0
	if len(perAuthor) > 0 {
		lurkerRatio = float64(lurkers) / float64(len(perAuthor))
	}

	sources := make([]string, 0, len(sourceSet))
	for s := range sourceSet {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	return Summary{
		TotalEvents:     len(events),
		TotalPosts:      posts,
		TotalComments:   comments,
		UniqueUsers:     len(perAuthor),
		CommentsPerPost: round2(float64(comments) / float64(max(posts, 1))),
		LurkerRatio:     round2(lurkerRatio),
		TimeRange:       tr,
		Sources:         sources,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
