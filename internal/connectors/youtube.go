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

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeConnector fetches videos and their top-level comments through the
// YouTube Data API v3. Requires an API key.
type YouTubeConnector struct {
	client *resty.Client
	apiKey string
}

// NewYouTubeConnector creates a YouTube connector for the given API key.
func NewYouTubeConnector(apiKey string) *YouTubeConnector {
	client := resty.New().
		SetBaseURL(youtubeBaseURL).
		SetTimeout(30 * time.Second)

	return &YouTubeConnector{client: client, apiKey: apiKey}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			PublishedAt  string `json:"publishedAt"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeCommentsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					AuthorDisplayName string `json:"authorDisplayName"`
					PublishedAt       string `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos fetches videos matching the query, each enriched with up to
// commentLimit top-level comments. Videos whose comments cannot be fetched
// (typically disabled comments) are kept without them.
func (y *YouTubeConnector) SearchVideos(ctx context.Context, query string, videoLimit, commentLimit int) ([]models.PostRecord, error) {
	logger.Log.Info("Searching videos",
		zap.String("query", query),
		zap.Int("video_limit", videoLimit),
		zap.Int("comment_limit", commentLimit),
	)

	var search youtubeSearchResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":          query,
			"part":       "snippet",
			"type":       "video",
			"maxResults": strconv.Itoa(videoLimit),
			"key":        y.apiKey,
		}).
		SetResult(&search).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("video search returned %d", resp.StatusCode())
	}

	posts := make([]models.PostRecord, 0, len(search.Items))
	for _, item := range search.Items {
		videoID := item.ID.VideoID
		snippet := item.Snippet

		author := snippet.ChannelTitle
		title := snippet.Title
		post := models.PostRecord{
			ID:      videoID,
			Author:  &author,
			Title:   &title,
			Content: fmt.Sprintf("%s\n\n%s", snippet.Title, snippet.Description),
			URL:     "https://www.youtube.com/watch?v=" + videoID,
			Source:  models.SourceYouTube,
		}
		if ts, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			epoch := float64(ts.Unix())
			post.Timestamp = &epoch
		}

		comments, err := y.videoComments(ctx, videoID, commentLimit)
		if err != nil {
			logger.Error("Comment fetch failed",
				zap.String("video_id", videoID),
				zap.Error(err),
			)
		}
		for _, comment := range comments {
			raw, err := json.Marshal(comment)
			if err != nil {
				return nil, err
			}
			post.Comments = append(post.Comments, raw)
		}

		posts = append(posts, post)
	}

	return posts, nil
}

func (y *YouTubeConnector) videoComments(ctx context.Context, videoID string, limit int) ([]models.CommentRecord, error) {
	var threads youtubeCommentsResponse
	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"videoId":    videoID,
			"maxResults": strconv.Itoa(limit),
			"textFormat": "plainText",
			"key":        y.apiKey,
		}).
		SetResult(&threads).
		Get("/commentThreads")
	if err != nil {
		return nil, fmt.Errorf("comment threads request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("comment threads request returned %d", resp.StatusCode())
	}

	comments := make([]models.CommentRecord, 0, len(threads.Items))
	for _, item := range threads.Items {
		snippet := item.Snippet.TopLevelComment.Snippet

		comment := models.CommentRecord{
			ID:      item.ID,
			PostID:  videoID,
			Content: snippet.TextDisplay,
			Source:  models.SourceYouTube,
		}
		author := snippet.AuthorDisplayName
		comment.Author = &author
		if ts, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			epoch := float64(ts.Unix())
			comment.Timestamp = &epoch
		}

		comments = append(comments, comment)
	}
	return comments, nil
}
