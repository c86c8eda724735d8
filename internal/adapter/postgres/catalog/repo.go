// Package catalog persists denormalized concept records so downstream
// services can query terms without touching the snapshot files.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/larsivik/snomed-catalog/internal/adapter/postgres"
	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/pkg/ctxutil"
)

// ErrNoRunID is returned by write operations when the caller has not tagged
// the context with a run ID via ctxutil.WithRunID.
var ErrNoRunID = errors.New("run id not set on context")

// Repo is the PostgreSQL repository for the denormalized catalog tables.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ---------------------------------------------------------------------------
// Bulk load (pgx.Batch API)
// ---------------------------------------------------------------------------

// BulkUpsertConceptTerms inserts concept records using pgx.Batch. A record
// replaces an existing row with the same (concept_id, language) via
// ON CONFLICT DO UPDATE, so reloading a release is idempotent. Rows are
// stamped with the run ID carried on the context.
// Returns the number of affected rows.
func (r *Repo) BulkUpsertConceptTerms(ctx context.Context, records []domain.ConceptRecord) (int, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("upsert concept terms: %w", ErrNoRunID)
	}
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO catalog_concept_terms (concept_id, language, fsn, preferred_terms, acceptable_terms, parent_ids, run_id, loaded_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			 ON CONFLICT (concept_id, language) DO UPDATE SET
			   fsn = EXCLUDED.fsn,
			   preferred_terms = EXCLUDED.preferred_terms,
			   acceptable_terms = EXCLUDED.acceptable_terms,
			   parent_ids = EXCLUDED.parent_ids,
			   run_id = EXCLUDED.run_id,
			   loaded_at = EXCLUDED.loaded_at`,
			int64(rec.ConceptID), string(rec.Language), rec.FSN,
			emptyIfNil(rec.PreferredTerms), emptyIfNil(rec.AcceptableTerms),
			idsToInt64(rec.ParentIDs), runID,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// BulkUpsertDefinitions inserts definition records using pgx.Batch.
// Existing rows (by primary key) are skipped via ON CONFLICT DO NOTHING.
func (r *Repo) BulkUpsertDefinitions(ctx context.Context, records []domain.DefinitionRecord) (int, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("upsert definitions: %w", ErrNoRunID)
	}
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO catalog_concept_definitions (concept_id, language, definition, run_id, loaded_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (concept_id, language, definition) DO NOTHING`,
			int64(rec.ConceptID), string(rec.Language), rec.Definition, runID,
		)
	}

	return r.sendBatchExec(ctx, batch)
}

// DeleteStaleRecords removes rows not touched by the current run, identified
// by the run ID on the context. Called after a full load so concepts dropped
// from the release disappear from the catalog.
func (r *Repo) DeleteStaleRecords(ctx context.Context) (int, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		return 0, fmt.Errorf("delete stale records: %w", ErrNoRunID)
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var deleted int
	for _, table := range []string{"catalog_concept_terms", "catalog_concept_definitions"} {
		tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id <> $1", table), runID)
		if err != nil {
			return deleted, fmt.Errorf("delete stale rows from %s: %w", table, err)
		}
		deleted += int(tag.RowsAffected())
	}
	return deleted, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetConceptTerms returns the stored record for one concept and dialect.
// Returns domain.ErrNotFound if absent.
func (r *Repo) GetConceptTerms(ctx context.Context, conceptID domain.SCTID, language domain.Dialect) (*domain.ConceptRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.
		Select("concept_id", "language", "fsn", "preferred_terms", "acceptable_terms", "parent_ids").
		From("catalog_concept_terms").
		Where(squirrel.Eq{"concept_id": int64(conceptID), "language": string(language)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rec, err := scanRecord(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, conceptID)
	}
	return rec, nil
}

// SearchFilter defines parameters for searching the catalog.
type SearchFilter struct {
	// FSN performs ILIKE '%...%' on the fully specified name.
	// nil or empty string means no text filter.
	FSN *string

	// Language restricts results to one dialect.
	Language *domain.Dialect

	// Limit is the maximum number of records to return. Default: 50, max: 500.
	Limit int

	// Offset is the number of records to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

func (f *SearchFilter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Search returns records matching the filter, ordered by concept identifier
// and language.
func (r *Repo) Search(ctx context.Context, filter SearchFilter) ([]domain.ConceptRecord, error) {
	filter.normalize()
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select("concept_id", "language", "fsn", "preferred_terms", "acceptable_terms", "parent_ids").
		From("catalog_concept_terms").
		OrderBy("concept_id ASC", "language ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.FSN != nil && *filter.FSN != "" {
		builder = builder.Where(squirrel.ILike{"fsn": "%" + *filter.FSN + "%"})
	}
	if filter.Language != nil {
		builder = builder.Where(squirrel.Eq{"language": string(*filter.Language)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}
	defer rows.Close()

	var records []domain.ConceptRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanRecord(row pgx.Row) (*domain.ConceptRecord, error) {
	var (
		conceptID int64
		language  string
		rec       domain.ConceptRecord
		parents   []int64
	)
	err := row.Scan(&conceptID, &language, &rec.FSN,
		&rec.PreferredTerms, &rec.AcceptableTerms, &parents)
	if err != nil {
		return nil, err
	}
	rec.ConceptID = domain.SCTID(conceptID)
	rec.Language = domain.Dialect(language)
	rec.ParentIDs = int64ToIDs(parents)
	return &rec, nil
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}
	return affected, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, conceptID domain.SCTID) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("concept record %d: %w", conceptID, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("concept record %d: %w", conceptID, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("concept record %d: %w", conceptID, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("concept record %d: %w", conceptID, domain.ErrValidation)
		}
	}

	return fmt.Errorf("concept record %d: %w", conceptID, err)
}

// SCTIDs fit in 18 decimal digits, so int64 covers the full range.
func idsToInt64(ids []domain.SCTID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func int64ToIDs(ids []int64) []domain.SCTID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.SCTID, len(ids))
	for i, id := range ids {
		out[i] = domain.SCTID(id)
	}
	return out
}

func emptyIfNil(terms []string) []string {
	if terms == nil {
		return []string{}
	}
	return terms
}
