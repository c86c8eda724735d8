package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	rec := SeedConceptRecord(t, pool, 990000001, "nb")

	// Verify the row exists in DB via SELECT.
	var fsn string
	err := pool.QueryRow(
		context.Background(),
		`SELECT fsn FROM catalog_concept_terms WHERE concept_id = $1 AND language = $2`,
		int64(rec.ConceptID), string(rec.Language),
	).Scan(&fsn)
	if err != nil {
		t.Fatalf("expected record in DB, got error: %v", err)
	}

	if fsn != rec.FSN {
		t.Fatalf("expected fsn %q, got %q", rec.FSN, fsn)
	}
}
