package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/birchwood/ethnograph/internal/models"
)

// DefaultTopWords is the default cutoff for frequency tables.
const DefaultTopWords = 100

var (
	wordPattern = regexp.MustCompile(`\b[a-z]{3,}\b`)

	// Noise stripped before n-gram tokenization: raw URLs, HTML entities,
	// and image-filename tokens that survive copy-pasted markup.
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlEntityPattern = regexp.MustCompile(`&[a-z]+;|&#\d+;`)
	imageFilePattern  = regexp.MustCompile(`\S+\.(?:png|jpe?g|gif|webp|bmp)\b`)
)

// Tokenize lower-cases text and extracts runs of 3+ letters, dropping any
// token in the stopword set.
func Tokenize(text string, stopwords map[string]struct{}) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, skip := stopwords[t]; skip {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// WordFrequencies builds the top-N token frequency table over event content.
// Ties break alphabetically so repeated calls return identical tables.
func WordFrequencies(events []models.Event, stopwords map[string]struct{}, limit int) []WordCount {
	if limit <= 0 {
		limit = DefaultTopWords
	}

	counts := make(map[string]int)
	for i := range events {
		for _, token := range Tokenize(events[i].Content, stopwords) {
			counts[token]++
		}
	}
	return topCounts(counts, limit)
}

// NGrams builds the top phrase table for n-word phrases (n >= 2). URLs, HTML
// entities, and image filenames are stripped first. Stop words are kept:
// removing them splices unrelated words into phrases that were never written.
func NGrams(events []models.Event, n, limit int) []PhraseCount {
	if n < 2 {
		n = 2
	}
	if limit <= 0 {
		limit = DefaultTopWords
	}

	counts := make(map[string]int)
	for i := range events {
		text := strings.ToLower(events[i].Content)
		text = urlPattern.ReplaceAllString(text, " ")
		text = htmlEntityPattern.ReplaceAllString(text, " ")
		text = imageFilePattern.ReplaceAllString(text, " ")

		tokens := wordPattern.FindAllString(text, -1)
		for j := 0; j+n <= len(tokens); j++ {
			phrase := strings.Join(tokens[j:j+n], " ")
			counts[phrase]++
		}
	}

	top := topCounts(counts, limit)
	phrases := make([]PhraseCount, len(top))
	for i, wc := range top {
		phrases[i] = PhraseCount{Phrase: wc.Word, Count: wc.Count}
	}
	return phrases
}

// topCounts sorts a count map by descending count, alphabetical within ties,
// and keeps the first limit rows.
func topCounts(counts map[string]int, limit int) []WordCount {
	rows := make([]WordCount, 0, len(counts))
	for word, n := range counts {
		rows = append(rows, WordCount{Word: word, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Word < rows[j].Word
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
