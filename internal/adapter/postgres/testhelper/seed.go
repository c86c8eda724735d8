package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// SeedConceptRecord inserts one catalog row directly, bypassing the repo.
// Returns the inserted record.
func SeedConceptRecord(t *testing.T, pool *pgxpool.Pool, conceptID domain.SCTID, language domain.Dialect) domain.ConceptRecord {
	t.Helper()

	rec := domain.ConceptRecord{
		ConceptID:      conceptID,
		Language:       language,
		FSN:            "Seeded concept (test)",
		PreferredTerms: []string{"seedet begrep"},
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO catalog_concept_terms (concept_id, language, fsn, preferred_terms, acceptable_terms, parent_ids, run_id)
		 VALUES ($1, $2, $3, $4, '{}', '{}', $5)`,
		int64(rec.ConceptID), string(rec.Language), rec.FSN, rec.PreferredTerms, uuid.New(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedConceptRecord insert: %v", err)
	}

	return rec
}
