package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-commerce/declare/internal/classify"
	"github.com/inkwell-commerce/declare/internal/config"
	"github.com/inkwell-commerce/declare/internal/directory"
	"github.com/inkwell-commerce/declare/internal/engine"
	"github.com/inkwell-commerce/declare/internal/match"
	"github.com/inkwell-commerce/declare/internal/rules"
	"github.com/inkwell-commerce/declare/internal/similarity"
	"github.com/inkwell-commerce/declare/internal/sku"
	"github.com/inkwell-commerce/declare/internal/storage"
)

// openStorage opens (and migrates) the SQLite database from config.
func openStorage(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/declare/declare.db"
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(cmd.Context()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// loadTables loads the rule tables, applying any configured override file.
func loadTables() (rules.Tables, error) {
	return rules.Load(viper.GetString("rules.path"))
}

// buildScorer constructs the similarity scorer from the tables.
func buildScorer(tables rules.Tables) *similarity.Scorer {
	var opts []similarity.Option
	if len(tables.Synonyms) > 0 {
		opts = append(opts, similarity.WithSynonyms(tables.Synonyms))
	}
	if len(tables.DistinctiveTerms) > 0 {
		opts = append(opts, similarity.WithDistinctiveTerms(tables.DistinctiveTerms))
	}
	return similarity.NewScorer(opts...)
}

// buildEngine wires the full reconciliation pipeline over the database.
func buildEngine(db *storage.SQLiteStorage, tables rules.Tables, cfg engine.Config) (*engine.ReconcileEngine, error) {
	classifier, err := classify.NewClassifier(tables.Classification)
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	scorer := buildScorer(tables)
	var matchOpts []match.Option
	if threshold := viper.GetFloat64("matching.fuzzy_threshold"); threshold > 0 {
		matchOpts = append(matchOpts, match.WithThreshold(threshold))
	}
	matcher := match.NewMatcher(scorer, matchOpts...)

	generator := sku.NewGenerator(tables.SKU)
	dir := directory.New(db, scorer)

	return engine.New(db, db, dir, classifier, matcher, generator, cfg), nil
}
