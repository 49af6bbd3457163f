// Package cli implements the fynda command-line interface using cobra.
// Commands depend on core services through driving ports, injected by
// the composition root in cmd/fynda.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fynda-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fynda-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Nil checks in each command give a clear error
// when the composition root has not wired them.
var (
	searchService   driving.SearchService
	liveService     driving.LiveSearchService
	documentService driving.DocumentService
	indexService    driving.IndexService
)

// verboseFlag enables debug logging across all commands.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "fynda",
	Short: "Search your local files as you type",
	Long: `Fynda indexes text files on your machine and searches them with
full-text queries. The interactive UI updates results live while you
type: input is debounced, duplicate queries are skipped, and a newer
query cancels the lookup for an older one.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates the driving ports the CLI commands depend on.
type Services struct {
	Search   driving.SearchService
	Live     driving.LiveSearchService
	Document driving.DocumentService
	Index    driving.IndexService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	searchService = s.Search
	liveService = s.Live
	documentService = s.Document
	indexService = s.Index
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
