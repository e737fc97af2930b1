package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/birchwood/ethnograph/internal/logger"
	"github.com/birchwood/ethnograph/internal/models"
)

var (
	verbose bool
	outPath string
)

var rootCmd = &cobra.Command{
	Use:   "ethnograph",
	Short: "Ethnograph - social media dataset tooling",
	Long: `Ethnograph collects posts and comments from Reddit, Boards.ie and
YouTube into datasets that the analysis server can enrich and
aggregate.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		level := "info"
		if verbose {
			level = "debug"
		}
		if err := logger.Initialize(level, "ethnograph-cli.log"); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute runs the root command.
func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Write the dataset to a file instead of stdout")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(seedCmd)
}

// writeDataset emits the collected posts as a JSON array, to --out when
// given, otherwise stdout. The output is directly uploadable to the server.
func writeDataset(posts []models.PostRecord) error {
	raw, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	if outPath == "" {
		fmt.Println(string(raw))
		return nil
	}
	if err := os.WriteFile(outPath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d posts to %s\n", len(posts), outPath)
	return nil
}
