package analysis

import (
	"sort"

	"github.com/birchwood/ethnograph/internal/models"
)

// MinVocabTokens is the floor below which per-user vocabulary richness is
// considered unreliable and the user is excluded from the vocab rows.
const MinVocabTokens = 20

// TopUsers ranks (author, source) pairs by event count, descending. Rows
// with a missing author are dropped.
func TopUsers(events []models.Event) []TopUser {
	type key struct{ author, source string }
	counts := make(map[key]int)
	for i := range events {
		author := events[i].AuthorName()
		if author == "" {
			continue
		}
		counts[key{author, events[i].Source}]++
	}

	users := make([]TopUser, 0, len(counts))
	for k, n := range counts {
		users = append(users, TopUser{Author: k.author, Source: k.source, Count: n})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Count != users[j].Count {
			return users[i].Count > users[j].Count
		}
		if users[i].Author != users[j].Author {
			return users[i].Author < users[j].Author
		}
		return users[i].Source < users[j].Source
	})
	return users
}

// PerUserStats computes post/comment counts, ratios, and vocabulary
// richness per author, sorted ascending by comment_post_ratio.
func PerUserStats(events []models.Event, stopwords map[string]struct{}) []UserStats {
	type counts struct{ posts, comments int }
	perUser := make(map[string]*counts)

	for i := range events {
		author := events[i].AuthorName()
		if author == "" {
			continue
		}
		c, ok := perUser[author]
		if !ok {
			c = &counts{}
			perUser[author] = c
		}
		switch events[i].Type {
		case models.EventTypePost:
			c.posts++
		case models.EventTypeComment:
			c.comments++
		}
	}

	vocab := vocabRichness(events, stopwords)

	users := make([]UserStats, 0, len(perUser))
	for author, c := range perUser {
		total := c.posts + c.comments
		users = append(users, UserStats{
			Author:           author,
			Posts:            c.posts,
			Comments:         c.comments,
			CommentPostRatio: float64(c.comments) / float64(max(c.posts, 1)),
			CommentShare:     float64(c.comments) / float64(max(total, 1)),
			Vocab:            vocab[author],
		})
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CommentPostRatio != users[j].CommentPostRatio {
			return users[i].CommentPostRatio < users[j].CommentPostRatio
		}
		return users[i].Author < users[j].Author
	})
	return users
}

// vocabRichness computes unique/total token ratios per author, only for
// authors with at least MinVocabTokens filtered tokens.
func vocabRichness(events []models.Event, stopwords map[string]struct{}) map[string]*UserVocab {
	type tokenAgg struct {
		tokens map[string]int
		total  int
		events int
	}
	perUser := make(map[string]*tokenAgg)

	for i := range events {
		author := events[i].AuthorName()
		if author == "" {
			continue
		}
		agg, ok := perUser[author]
		if !ok {
			agg = &tokenAgg{tokens: make(map[string]int)}
			perUser[author] = agg
		}
		agg.events++
		for _, token := range Tokenize(events[i].Content, stopwords) {
			agg.tokens[token]++
			agg.total++
		}
	}

	result := make(map[string]*UserVocab, len(perUser))
	for author, agg := range perUser {
		if agg.total < MinVocabTokens {
			continue
		}
		unique := len(agg.tokens)
		result[author] = &UserVocab{
			Author:           author,
			Events:           agg.events,
			TotalWords:       agg.total,
			UniqueWords:      unique,
			VocabRichness:    round3(float64(unique) / float64(agg.total)),
			AvgWordsPerEvent: round2(float64(agg.total) / float64(max(agg.events, 1))),
			TopWords:         topCounts(agg.tokens, DefaultTopWords),
		}
	}
	return result
}

// BuildInteractionGraph resolves each comment's reply_to id to its author
// and counts directed replies. Self-replies and unresolvable references are
// skipped. Every known author appears as a node, even with no edges.
func BuildInteractionGraph(events []models.Event) InteractionGraph {
	graph := make(InteractionGraph)
	idToAuthor := make(map[string]string, len(events))

	for i := range events {
		author := events[i].AuthorName()
		if author != "" {
			graph[author] = map[string]int{}
		}
		if events[i].ID != "" && author != "" {
			idToAuthor[events[i].ID] = author
		}
	}

	for i := range events {
		e := &events[i]
		author := e.AuthorName()
		if author == "" || e.ReplyTo == nil || *e.ReplyTo == "" {
			continue
		}
		target, ok := idToAuthor[*e.ReplyTo]
		if !ok || target == author {
			continue
		}
		graph[author][target]++
	}
	return graph
}
