package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/birchwood/ethnograph/internal/seed"
)

var (
	seedPosts    int
	seedComments int
	seedValue    int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic dataset",
	Long:  "Generate a synthetic dataset of posts and comments for development without hitting live platforms",
	RunE: func(cmd *cobra.Command, args []string) error {
		value := seedValue
		if value == 0 {
			value = time.Now().UnixNano()
		}

		seeder := seed.NewSeeder(value)
		posts, err := seeder.Generate(seedPosts, seedComments)
		if err != nil {
			return err
		}
		return writeDataset(posts)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedPosts, "posts", 100, "Number of posts to generate")
	seedCmd.Flags().IntVar(&seedComments, "comments", 20, "Maximum comments per post")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (0 uses the current time)")
}
