// Command denormalize merges an international and a national snapshot release
// and writes the flattened per-concept term records as tab-delimited output.
// It is intended to be run offline as a batch job.
//
// Flags:
//
//	--input                    directory holding both release packages (overrides config)
//	--out                      output file for concept records (default: stdout)
//	--definitions-out          output file for textual definitions (off when empty)
//	--limit                    cap rows read per snapshot table
//	--id-filter                comma-separated concept IDs to restrict the run to
//	--allow-version-mismatch   proceed when the dependency check fails
//	--dry-run                  run the pipeline without writing output
//	--version                  print build version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/larsivik/snomed-catalog/internal/app"
	"github.com/larsivik/snomed-catalog/internal/config"
	"github.com/larsivik/snomed-catalog/internal/pipeline"
	"github.com/larsivik/snomed-catalog/internal/sink"
)

func main() {
	inputFlag := flag.String("input", "", "directory holding both release packages")
	outFlag := flag.String("out", "", "output file for concept records (default: stdout)")
	definitionsOutFlag := flag.String("definitions-out", "", "output file for textual definitions")
	limitFlag := flag.Int("limit", 0, "cap rows read per snapshot table")
	idFilterFlag := flag.String("id-filter", "", "comma-separated concept IDs to restrict the run to")
	allowMismatchFlag := flag.Bool("allow-version-mismatch", false, "proceed when the dependency check fails")
	dryRunFlag := flag.Bool("dry-run", false, "run the pipeline without writing output")
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

	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	if *inputFlag != "" {
		cfg.Input.Dir = *inputFlag
	}
	if *limitFlag > 0 {
		cfg.Pipeline.Limit = *limitFlag
	}
	if *allowMismatchFlag {
		cfg.Pipeline.AllowVersionMismatch = true
	}
	if *idFilterFlag != "" {
		filter, err := config.ParseIDFilter(*idFilterFlag)
		if err != nil {
			logger.Error("parse id filter", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.Pipeline.IDFilter = filter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

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

	if *dryRunFlag {
		logger.Info("dry run, skipping output",
			slog.Int("records", len(res.Records)),
			slog.Int("definitions", len(res.Definitions)),
		)
		return
	}

	if err := writeRecords(*outFlag, res); err != nil {
		logger.Error("write output", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *definitionsOutFlag != "" {
		if err := writeDefinitions(*definitionsOutFlag, res); err != nil {
			logger.Error("write definitions output", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("denormalization completed",
		slog.String("version", res.Version),
		slog.Int("records", len(res.Records)),
	)
}

func writeRecords(path string, res *pipeline.Result) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return sink.WriteConceptRecords(w, res.Records)
}

func writeDefinitions(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return sink.WriteDefinitionRecords(f, res.Definitions)
}
