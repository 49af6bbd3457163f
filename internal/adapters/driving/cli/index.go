package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the configured source",
	Long: `Walks the configured source and indexes every text file found.
With --watch, stays running after the full pass and keeps the index in
sync as files change on disk.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep watching for file changes after indexing")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	cmd.Println("Indexing...")

	stats, err := indexService.FullIndex(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d documents", stats.Indexed)
	if stats.Failed > 0 {
		cmd.Printf(", %d failed", stats.Failed)
	}
	cmd.Println(".")

	if !indexWatch {
		return nil
	}

	cmd.Println("Watching for changes (ctrl+c to stop)...")
	return indexService.Watch(cmd.Context())
}
