package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	redditBaseURL   = "https://www.reddit.com"
	redditUserAgent = "go:ethnograph:0.1 (by /u/ThisBirchWood)"

	// Reddit listings cap out at 100 items per request; larger fetches
	// page with the after cursor.
	redditPageLimit = 100
)

// RedditConnector fetches posts and user profiles from the public Reddit
// JSON listings. No authentication is required for read access.
type RedditConnector struct {
	client *resty.Client
}

// NewRedditConnector creates a Reddit connector with sane timeouts.
func NewRedditConnector() *RedditConnector {
	client := resty.New().
		SetBaseURL(redditBaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", redditUserAgent)

	return &RedditConnector{client: client}
}

// redditListing is the envelope Reddit wraps every listing response in.
type redditListing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
	Ups        int     `json:"ups"`
}

type redditAbout struct {
	Data struct {
		Name       string  `json:"name"`
		CreatedUTC float64 `json:"created_utc"`
		TotalKarma int     `json:"total_karma"`
	} `json:"data"`
}

// TopPosts fetches the top posts of a subreddit for a timeframe
// ("hour", "day", "week", "month", "year", "all").
func (r *RedditConnector) TopPosts(ctx context.Context, subreddit string, limit int, timeframe string) ([]models.PostRecord, error) {
	logger.Log.Info("Fetching top subreddit posts",
		zap.String("subreddit", subreddit),
		zap.Int("limit", limit),
		zap.String("timeframe", timeframe),
	)
	listing, err := r.fetchListing(ctx, fmt.Sprintf("/r/%s/top.json", subreddit), map[string]string{
		"limit": strconv.Itoa(limit),
		"t":     timeframe,
	})
	if err != nil {
		return nil, err
	}
	return parseRedditPosts(listing)
}

// NewPosts fetches the newest posts of a subreddit, paging with the after
// cursor until limit posts are collected or the listing is exhausted.
func (r *RedditConnector) NewPosts(ctx context.Context, subreddit string, limit int) ([]models.PostRecord, error) {
	logger.Log.Info("Fetching new subreddit posts",
		zap.String("subreddit", subreddit),
		zap.Int("limit", limit),
	)

	var (
		posts []models.PostRecord
		after string
	)
	path := fmt.Sprintf("/r/%s/new.json", subreddit)

	for len(posts) < limit {
		batchLimit := min(redditPageLimit, limit-len(posts))
		params := map[string]string{"limit": strconv.Itoa(batchLimit)}
		if after != "" {
			params["after"] = after
		}

		listing, err := r.fetchListing(ctx, path, params)
		if err != nil {
			return nil, err
		}
		batch, err := parseRedditPosts(listing)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		posts = append(posts, batch...)
		after = listing.Data.After
		if after == "" {
			break
		}
	}

	return posts, nil
}

// SearchPosts searches within a subreddit, sorted by top score.
func (r *RedditConnector) SearchPosts(ctx context.Context, subreddit, query string, limit int, timeframe string) ([]models.PostRecord, error) {
	logger.Log.Info("Searching subreddit",
		zap.String("subreddit", subreddit),
		zap.String("query", query),
		zap.Int("limit", limit),
	)
	listing, err := r.fetchListing(ctx, fmt.Sprintf("/r/%s/search.json", subreddit), map[string]string{
		"q":           query,
		"limit":       strconv.Itoa(limit),
		"restrict_sr": "on",
		"sort":        "top",
		"t":           timeframe,
	})
	if err != nil {
		return nil, err
	}
	return parseRedditPosts(listing)
}

// GetUser fetches a user's public profile.
func (r *RedditConnector) GetUser(ctx context.Context, username string) (*models.UserRecord, error) {
	var about redditAbout
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&about).
		Get(fmt.Sprintf("/user/%s/about.json", username))
	if err != nil {
		return nil, fmt.Errorf("reddit user request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("reddit user request returned %d", resp.StatusCode())
	}

	karma := about.Data.TotalKarma
	return &models.UserRecord{
		Username:   about.Data.Name,
		CreatedUTC: int64(about.Data.CreatedUTC),
		Karma:      &karma,
	}, nil
}

func (r *RedditConnector) fetchListing(ctx context.Context, path string, params map[string]string) (*redditListing, error) {
	var listing redditListing
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&listing).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("reddit request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("reddit request returned %d", resp.StatusCode())
	}
	return &listing, nil
}

func parseRedditPosts(listing *redditListing) ([]models.PostRecord, error) {
	posts := make([]models.PostRecord, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		var rp redditPost
		if err := json.Unmarshal(child.Data, &rp); err != nil {
			return nil, fmt.Errorf("malformed reddit post: %w", err)
		}

		author := rp.Author
		title := rp.Title
		ts := rp.CreatedUTC
		subreddit := rp.Subreddit
		ups := rp.Ups
		posts = append(posts, models.PostRecord{
			ID:        rp.ID,
			Author:    &author,
			Title:     &title,
			Content:   rp.Selftext,
			URL:       rp.URL,
			Timestamp: &ts,
			Source:    models.SourceReddit,
			Subreddit: &subreddit,
			Upvotes:   &ups,
		})
	}
	return posts, nil
}
