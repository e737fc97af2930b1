package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

// Seeder generates synthetic post datasets for development and demos, so
// the pipeline can be exercised without scraping live platforms or spending
// API quota.
type Seeder struct {
	rng *rand.Rand
}

// NewSeeder creates a seeder. Pass a fixed seed for reproducible datasets.
func NewSeeder(seed int64) *Seeder {
	_ = gofakeit.Seed(seed)
	return &Seeder{rng: rand.New(rand.NewSource(seed))}
}

// topicalSentences skews generated content toward the taxonomy's domains so
// seeded datasets produce non-degenerate topic and emotion distributions.
var topicalSentences = []string{
	"The match last night was unbelievable, best performance all season.",
	"Rent in the city centre has gone completely mad this year.",
	"Anyone else stuck on the motorway for two hours this morning?",
	"The new government housing scheme will not fix supply.",
	"Great little restaurant near the quays, the chowder is excellent.",
	"Festival tickets sold out in minutes, absolute joke.",
	"Training schedule for the county team looks brutal this year.",
	"Bus was cancelled again, third time this week.",
	"Planning permission refused for the apartment block on the north side.",
	"The council vote on the cycle lanes is next Tuesday.",
}

func (s *Seeder) sentence() string {
	if s.rng.Float64() < 0.6 {
		return topicalSentences[s.rng.Intn(len(topicalSentences))]
	}
	return gofakeit.Sentence(12)
}

// Generate builds a synthetic dataset of posts with nested comment threads
// across all three sources.
func (s *Seeder) Generate(postCount, maxCommentsPerPost int) ([]models.PostRecord, error) {
	logger.Log.Info("Generating synthetic dataset",
		zap.Int("posts", postCount),
		zap.Int("max_comments_per_post", maxCommentsPerPost),
	)

	// A fixed author pool so per-user stats and the interaction graph have
	// recurring participants.
	authors := make([]string, 40)
	for i := range authors {
		authors[i] = gofakeit.Username()
	}
	sources := []string{models.SourceReddit, models.SourceBoards, models.SourceYouTube}

	now := time.Now().Unix()
	posts := make([]models.PostRecord, 0, postCount)

	for i := 0; i < postCount; i++ {
		source := sources[s.rng.Intn(len(sources))]
		author := authors[s.rng.Intn(len(authors))]
		title := gofakeit.Sentence(6)
		postID := fmt.Sprintf("seed-%s-%d", source, i)

		// Spread posts over the last 90 days.
		epoch := float64(now - int64(s.rng.Intn(90*24*3600)))

		post := models.PostRecord{
			ID:        postID,
			Author:    &author,
			Title:     &title,
			Content:   s.sentence() + " " + s.sentence(),
			URL:       gofakeit.URL(),
			Timestamp: &epoch,
			Source:    source,
		}
		if source == models.SourceReddit {
			subreddit := gofakeit.Word()
			ups := s.rng.Intn(5000)
			post.Subreddit = &subreddit
			post.Upvotes = &ups
		}

		commentIDs := make([]string, 0, maxCommentsPerPost)
		for j := 0; j < s.rng.Intn(maxCommentsPerPost+1); j++ {
			commentAuthor := authors[s.rng.Intn(len(authors))]
			commentEpoch := epoch + float64(s.rng.Intn(48*3600))
			commentID := fmt.Sprintf("%s-c%d", postID, j)

			comment := models.CommentRecord{
				ID:        commentID,
				PostID:    postID,
				Author:    &commentAuthor,
				Content:   s.sentence(),
				Timestamp: &commentEpoch,
				Source:    source,
			}
			// Roughly a third of comments reply to an earlier comment
			// instead of the post.
			if len(commentIDs) > 0 && s.rng.Float64() < 0.35 {
				replyTo := commentIDs[s.rng.Intn(len(commentIDs))]
				comment.ReplyTo = &replyTo
			}
			commentIDs = append(commentIDs, commentID)

			raw, err := json.Marshal(comment)
			if err != nil {
				return nil, fmt.Errorf("failed to encode seeded comment: %w", err)
			}
			post.Comments = append(post.Comments, raw)
		}

		posts = append(posts, post)
	}

	return posts, nil
}
