package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
	"go.uber.org/zap"
)

const (
	boardsBaseURL   = "https://www.boards.ie"
	boardsUserAgent = "Mozilla/5.0 (compatible; ForumScraper/1.0)"

	// Boards.ie renders timestamps like "15-03-2024 3:04PM".
	boardsTimeLayout = "02-01-2006 3:04PM"

	boardsCommentLimit = 500
	boardsFetchWorkers = 30
)

var (
	boardsTimestampPattern = regexp.MustCompile(`\d{2}-\d{2}-\d{4}\s+\d{1,2}:\d{2}[AP]M`)
	boardsThreadIDPattern  = regexp.MustCompile(`discussion/(\d+)`)
)

// BoardsConnector scrapes threads and comments from the Boards.ie forum.
// The site has no public API, so posts are reconstructed from the rendered
// HTML.
type BoardsConnector struct {
	client  *http.Client
	baseURL string
}

// NewBoardsConnector creates a Boards.ie scraper.
func NewBoardsConnector() *BoardsConnector {
	return &BoardsConnector{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: boardsBaseURL,
	}
}

// NewPosts collects up to limit threads from a category, newest first, each
// with its comment pages flattened in. Threads that fail to parse are
// skipped rather than failing the whole fetch.
func (b *BoardsConnector) NewPosts(ctx context.Context, category string, limit int) ([]models.PostRecord, error) {
	logger.Log.Info("Fetching forum category",
		zap.String("category", category),
		zap.Int("limit", limit),
	)

	urls, err := b.collectThreadURLs(ctx, category, limit)
	if err != nil {
		return nil, err
	}
	logger.Log.Debug("Collected thread URLs",
		zap.String("category", category),
		zap.Int("count", len(urls)),
	)

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		posts []models.PostRecord
	)
	sem := make(chan struct{}, boardsFetchWorkers)

	for _, threadURL := range urls {
		wg.Add(1)
		sem <- struct{}{}
		go func(threadURL string) {
			defer wg.Done()
			defer func() { <-sem }()

			post, err := b.fetchThread(ctx, threadURL)
			if err != nil {
				logger.Error("Thread fetch failed",
					zap.String("url", threadURL),
					zap.Error(err),
				)
				return
			}
			mu.Lock()
			posts = append(posts, *post)
			mu.Unlock()
		}(threadURL)
	}
	wg.Wait()

	return posts, nil
}

// collectThreadURLs walks the paginated category listing until limit thread
// links are gathered or a page yields none.
func (b *BoardsConnector) collectThreadURLs(ctx context.Context, category string, limit int) ([]string, error) {
	var urls []string
	for page := 1; len(urls) < limit; page++ {
		doc, err := b.fetchDocument(ctx, fmt.Sprintf("%s/categories/%s/p%d", b.baseURL, category, page))
		if err != nil {
			return nil, err
		}

		found := 0
		doc.Find("a.threadbit-threadlink").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if len(urls) >= limit {
				return false
			}
			if href, ok := s.Attr("href"); ok {
				urls = append(urls, href)
				found++
			}
			return true
		})
		if found == 0 {
			break
		}
	}
	return urls, nil
}

// fetchThread parses a thread page into a post with nested comments.
func (b *BoardsConnector) fetchThread(ctx context.Context, threadURL string) (*models.PostRecord, error) {
	doc, err := b.fetchDocument(ctx, threadURL)
	if err != nil {
		return nil, err
	}

	post := b.parseThread(doc, threadURL)

	comments, err := b.parseCommentPages(ctx, doc, threadURL, post.ID, boardsCommentLimit)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		raw, err := json.Marshal(comment)
		if err != nil {
			return nil, err
		}
		post.Comments = append(post.Comments, raw)
	}
	return post, nil
}

func (b *BoardsConnector) parseThread(doc *goquery.Document, threadURL string) *models.PostRecord {
	post := &models.PostRecord{
		URL:    threadURL,
		Source: models.SourceBoards,
	}

	if m := boardsThreadIDPattern.FindStringSubmatch(threadURL); m != nil {
		post.ID = m[1]
	}
	if author := strings.TrimSpace(doc.Find(".userinfo-username-title").First().Text()); author != "" {
		post.Author = &author
	}
	if title := strings.TrimSpace(doc.Find(".PageTitle h1").First().Text()); title != "" {
		post.Title = &title
	}
	post.Content = strings.TrimSpace(doc.Find(".Message.userContent").First().Text())

	header := doc.Find(".postbit-header").First().Text()
	if raw := boardsTimestampPattern.FindString(header); raw != "" {
		if ts, err := time.Parse(boardsTimeLayout, raw); err == nil {
			epoch := float64(ts.Unix())
			post.Timestamp = &epoch
		}
	}

	return post
}

// parseCommentPages walks the thread's comment pagination via the Next
// link, starting from the already-fetched first page.
func (b *BoardsConnector) parseCommentPages(ctx context.Context, doc *goquery.Document, threadURL, postID string, limit int) ([]models.CommentRecord, error) {
	var comments []models.CommentRecord

	for doc != nil && len(comments) < limit {
		comments = append(comments, b.parsePageComments(doc, postID)...)

		next, ok := doc.Find("a.Next").First().Attr("href")
		if !ok || next == "" {
			break
		}
		if !strings.HasPrefix(next, "http") {
			next = b.baseURL + next
		}
		var err error
		doc, err = b.fetchDocument(ctx, next)
		if err != nil {
			return nil, err
		}
	}

	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

func (b *BoardsConnector) parsePageComments(doc *goquery.Document, postID string) []models.CommentRecord {
	var comments []models.CommentRecord

	doc.Find("li.ItemComment").Each(func(_ int, tag *goquery.Selection) {
		comment := models.CommentRecord{
			PostID: postID,
			Source: models.SourceBoards,
		}
		comment.ID, _ = tag.Attr("id")

		if author := strings.TrimSpace(tag.Find("span.userinfo-username-title").First().Text()); author != "" {
			comment.Author = &author
		}

		if raw := strings.TrimSpace(tag.Find("span.DateCreated").First().Text()); raw != "" {
			if ts, err := time.Parse(boardsTimeLayout, raw); err == nil {
				epoch := float64(ts.Unix())
				comment.Timestamp = &epoch
			}
		}

		// Quoted text belongs to the quoted commenter, not this one.
		message := tag.Find("div.Message.userContent").First()
		message.Find("blockquote").Remove()
		comment.Content = strings.TrimSpace(message.Text())

		comments = append(comments, comment)
	})

	return comments
}

func (b *BoardsConnector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", boardsUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forum page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forum page returned %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
