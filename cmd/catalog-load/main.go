// Command catalog-load runs the denormalization pipeline and loads the
// resulting records into the PostgreSQL catalog tables. Each invocation is
// tagged with a run ID; rows from earlier runs are removed after a successful
// load so the catalog mirrors exactly one release.
//
// Flags:
//
//	--input                    directory holding both release packages (overrides config)
//	--batch-size               rows per insert batch (default 500)
//	--keep-stale               skip deleting rows from earlier runs
//	--allow-version-mismatch   proceed when the dependency check fails
//	--version                  print build version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/larsivik/snomed-catalog/internal/adapter/postgres"
	"github.com/larsivik/snomed-catalog/internal/adapter/postgres/catalog"
	"github.com/larsivik/snomed-catalog/internal/app"
	"github.com/larsivik/snomed-catalog/internal/config"
	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/pipeline"
	"github.com/larsivik/snomed-catalog/pkg/ctxutil"
)

func main() {
	inputFlag := flag.String("input", "", "directory holding both release packages")
	batchSizeFlag := flag.Int("batch-size", 500, "rows per insert batch")
	keepStaleFlag := flag.Bool("keep-stale", false, "skip deleting rows from earlier runs")
	allowMismatchFlag := flag.Bool("allow-version-mismatch", false, "proceed when the dependency check fails")
	versionFlag := flag.Bool("version", false, "print build version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.DSN == "" {
		log.Fatal("database.dsn is required for catalog loading")
	}

	logger := app.NewLogger(cfg.Log)

	if *inputFlag != "" {
		cfg.Input.Dir = *inputFlag
	}
	if *allowMismatchFlag {
		cfg.Pipeline.AllowVersionMismatch = true
	}

	runID := uuid.New()
	logger = logger.With(slog.String("run_id", runID.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRunID(ctx, runID)

	p := pipeline.New(logger, pipeline.Config{
		InputDir:                  cfg.Input.Dir,
		ExpectedDependencyVersion: cfg.Input.ExpectedDependencyVersion,
		AllowVersionMismatch:      cfg.Pipeline.AllowVersionMismatch,
		Limit:                     cfg.Pipeline.Limit,
		IDFilter:                  cfg.Pipeline.IDFilter,
	})
	res, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := catalog.New(pool, txm)

	if err := load(ctx, logger, repo, txm, res, *batchSizeFlag, !*keepStaleFlag); err != nil {
		logger.Error("catalog load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("catalog load completed",
		slog.String("release_version", res.Version),
		slog.Int("records", len(res.Records)),
		slog.Int("definitions", len(res.Definitions)),
	)
}

// load writes all records in one transaction so readers never observe a
// partially loaded release. The run ID travels on the context.
func load(ctx context.Context, logger *slog.Logger, repo *catalog.Repo, txm *postgres.TxManager,
	res *pipeline.Result, batchSize int, deleteStale bool) error {

	return txm.RunInTx(ctx, func(ctx context.Context) error {
		upserted, err := batchUpsert(res.Records, batchSize, func(batch []domain.ConceptRecord) (int, error) {
			return repo.BulkUpsertConceptTerms(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("upsert concept terms: %w", err)
		}
		logger.Info("concept terms loaded", slog.Int("affected", upserted))

		inserted, err := batchUpsert(res.Definitions, batchSize, func(batch []domain.DefinitionRecord) (int, error) {
			return repo.BulkUpsertDefinitions(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("upsert definitions: %w", err)
		}
		logger.Info("definitions loaded", slog.Int("affected", inserted))

		if deleteStale {
			deleted, err := repo.DeleteStaleRecords(ctx)
			if err != nil {
				return fmt.Errorf("delete stale records: %w", err)
			}
			logger.Info("stale records removed", slog.Int("deleted", deleted))
		}
		return nil
	})
}

// batchUpsert splits items into batches and processes each via fn.
func batchUpsert[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
