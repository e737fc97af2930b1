package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birchwood/ethnograph/internal/connectors"
)

var (
	fetchLimit     int
	redditMode     string
	redditQuery    string
	redditTime     string
	youtubeQuery   string
	commentLimit   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect posts from a platform",
	Long:  "Fetch posts and comments from Reddit, Boards.ie or YouTube and emit them as an uploadable dataset",
}

var fetchRedditCmd = &cobra.Command{
	Use:   "reddit <subreddit>",
	Short: "Fetch posts from a subreddit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subreddit := args[0]
		conn := connectors.NewRedditConnector()
		ctx := cmd.Context()

		switch redditMode {
		case "top":
			posts, err := conn.TopPosts(ctx, subreddit, fetchLimit, redditTime)
			if err != nil {
				return err
			}
			return writeDataset(posts)
		case "new":
			posts, err := conn.NewPosts(ctx, subreddit, fetchLimit)
			if err != nil {
				return err
			}
			return writeDataset(posts)
		case "search":
			if redditQuery == "" {
				return fmt.Errorf("--query is required with --mode search")
			}
			posts, err := conn.SearchPosts(ctx, subreddit, redditQuery, fetchLimit, redditTime)
			if err != nil {
				return err
			}
			return writeDataset(posts)
		default:
			return fmt.Errorf("unknown mode %q (want top, new or search)", redditMode)
		}
	},
}

var fetchBoardsCmd = &cobra.Command{
	Use:   "boards <category>",
	Short: "Scrape threads from a Boards.ie category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn := connectors.NewBoardsConnector()
		posts, err := conn.NewPosts(cmd.Context(), args[0], fetchLimit)
		if err != nil {
			return err
		}
		return writeDataset(posts)
	},
}

var fetchYouTubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Fetch videos and comments matching a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := os.Getenv("YOUTUBE_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("YOUTUBE_API_KEY is required for youtube fetches")
		}
		if youtubeQuery == "" {
			return fmt.Errorf("--query is required")
		}

		conn := connectors.NewYouTubeConnector(apiKey)
		posts, err := conn.SearchVideos(cmd.Context(), youtubeQuery, fetchLimit, commentLimit)
		if err != nil {
			return err
		}
		return writeDataset(posts)
	},
}

func init() {
	fetchCmd.PersistentFlags().IntVarP(&fetchLimit, "limit", "l", 10, "Maximum number of posts to fetch")

	fetchRedditCmd.Flags().StringVar(&redditMode, "mode", "top", "Listing to fetch: top, new or search")
	fetchRedditCmd.Flags().StringVarP(&redditQuery, "query", "q", "", "Search query (mode search)")
	fetchRedditCmd.Flags().StringVarP(&redditTime, "timeframe", "t", "day", "Timeframe: hour, day, week, month, year, all")

	fetchYouTubeCmd.Flags().StringVarP(&youtubeQuery, "query", "q", "", "Video search query")
	fetchYouTubeCmd.Flags().IntVar(&commentLimit, "comments", 100, "Maximum comments per video")

	fetchCmd.AddCommand(fetchRedditCmd)
	fetchCmd.AddCommand(fetchBoardsCmd)
	fetchCmd.AddCommand(fetchYouTubeCmd)
}
