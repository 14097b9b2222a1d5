package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/justestif/go-story-soundtracker/internal/catalog"
	"github.com/justestif/go-story-soundtracker/internal/db"
	"github.com/justestif/go-story-soundtracker/internal/nlu"
	"github.com/justestif/go-story-soundtracker/internal/profile"
	"github.com/justestif/go-story-soundtracker/internal/query"
	"github.com/justestif/go-story-soundtracker/internal/recommend"
	"github.com/justestif/go-story-soundtracker/internal/taxonomy"
)

// buildEngine wires the full pipeline from flags and environment. The
// returned cleanup closes any database connection; callers must invoke it
// even when the engine is discarded.
func buildEngine(ctx context.Context) (*recommend.Engine, func(), error) {
	cleanup := func() {}

	nluCfg, err := nlu.LoadConfig()
	if err != nil {
		return nil, cleanup, fmt.Errorf("loading NLU config: %w", err)
	}
	nluClient := nlu.NewClient(nluCfg)

	catalogCfg, err := catalog.LoadConfig()
	if err != nil {
		return nil, cleanup, fmt.Errorf("loading catalog config: %w", err)
	}
	catalogClient, err := catalog.NewClient(ctx, catalogCfg)
	if err != nil {
		return nil, cleanup, fmt.Errorf("creating catalog client: %w", err)
	}

	tax, err := loadTaxonomy()
	if err != nil {
		return nil, cleanup, err
	}

	var retrieverOpts []catalog.RetrieverOption
	if url := viper.GetString("database-url"); url != "" {
		database, err := db.New(ctx, url)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connecting to feature cache: %w", err)
		}
		cleanup = database.Close
		features := database.Features()
		if err := features.Migrate(ctx); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("migrating feature cache: %w", err)
		}
		retrieverOpts = append(retrieverOpts, catalog.WithFeatureCache(features))
		log.Println("feature cache enabled")
	}

	profiler := profile.New(nluClient, nluClient, tax)
	generator := query.New(nluClient, tax)
	retriever := catalog.NewRetriever(
		catalogClient, catalogClient, viper.GetStringSlice("artists"), retrieverOpts...)

	engine := recommend.NewEngine(profiler, generator, retriever,
		recommend.WithResultCap(viper.GetInt("cap")),
		recommend.WithSadnessThreshold(viper.GetFloat64("sadness-threshold")),
		recommend.WithMinParagraphWords(viper.GetInt("min-words")),
	)

	return engine, cleanup, nil
}

// loadTaxonomy reads the taxonomy file named by the flag, falling back to the
// built-in taxonomy.
func loadTaxonomy() (*taxonomy.Taxonomy, error) {
	path := viper.GetString("taxonomy")
	if path == "" {
		return taxonomy.Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy %s: %w", path, err)
	}
	defer f.Close()

	tax, err := taxonomy.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy %s: %w", path, err)
	}
	return tax, nil
}
