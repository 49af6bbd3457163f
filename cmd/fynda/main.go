// Command fynda is the entrypoint for the fynda CLI.
// It wires adapters to core services and hands control to the commands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/fynda-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driven/index/bleve"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fynda-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/fynda-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/fynda-cli/internal/core/domain"
	"github.com/custodia-labs/fynda-cli/internal/core/services"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(configStore.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	defer store.Close()

	engine, err := bleve.NewEngine(configStore.GetString(file.KeyIndexPath))
	if err != nil {
		return fmt.Errorf("opening search index: %w", err)
	}
	defer engine.Close()

	docStore := store.DocumentStore()

	sourceRoot := configStore.GetString(file.KeySourceRoot)
	if sourceRoot == "" {
		// Sensible default: index the working directory
		sourceRoot, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}
	connector := filesystem.New("local", sourceRoot)
	defer connector.Close()

	pipelineConfig := domain.PipelineConfig{
		DebounceWindow: time.Duration(configStore.GetInt(file.KeyDebounceWindow)) * time.Millisecond,
		Limit:          configStore.GetInt(file.KeySearchLimit),
		MinQueryLength: configStore.GetInt(file.KeyMinQueryLength),
	}

	searchService := services.NewSearchService(docStore, engine)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:   searchService,
		Live:     services.NewLiveSearch(searchService, pipelineConfig),
		Document: services.NewDocuments(docStore),
		Index:    services.NewIndexer(connector, docStore, engine),
	})

	return cli.Execute()
}
