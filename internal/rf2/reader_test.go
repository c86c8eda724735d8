package rf2

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

func writeSnapshot(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

const conceptHeader = "id\teffectiveTime\tactive\tmoduleId\tdefinitionStatusId"

func TestReadConcepts(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "sct2_Concept_Snapshot_INT_20240401.txt",
		conceptHeader,
		"10000006\t20240401\t1\t900000000000207008\t900000000000074008",
		"20000004\t20230101\t0\t900000000000207008\t900000000000074008",
	)

	concepts, err := ReadConcepts(path, 0)
	if err != nil {
		t.Fatalf("ReadConcepts: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("got %d concepts, want 2", len(concepts))
	}
	if concepts[0].ID != 10000006 || !concepts[0].Active || concepts[0].EffectiveTime != 20240401 {
		t.Errorf("unexpected first row: %+v", concepts[0])
	}
	if concepts[1].Active {
		t.Error("second row should be inactive")
	}
}

func TestReadConcepts_Limit(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "sct2_Concept_Snapshot_INT_20240401.txt",
		conceptHeader,
		"10000006\t20240401\t1\t900000000000207008\t900000000000074008",
		"20000004\t20240401\t1\t900000000000207008\t900000000000074008",
		"30000002\t20240401\t1\t900000000000207008\t900000000000074008",
	)

	concepts, err := ReadConcepts(path, 1)
	if err != nil {
		t.Fatalf("ReadConcepts: %v", err)
	}
	if len(concepts) != 1 {
		t.Fatalf("limit=1: got %d rows", len(concepts))
	}
}

func TestReadConcepts_FieldCountMismatch(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "sct2_Concept_Snapshot_INT_20240401.txt",
		conceptHeader,
		"10000006\t20240401\t1\t900000000000207008\t900000000000074008",
		"20000004\t20240401\t1",
	)

	_, err := ReadConcepts(path, 0)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}

	var pe *domain.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %T", err)
	}
	if pe.Line != 3 {
		t.Errorf("ParseError.Line = %d, want 3", pe.Line)
	}
	if pe.File != "sct2_Concept_Snapshot_INT_20240401.txt" {
		t.Errorf("ParseError.File = %q", pe.File)
	}
}

func TestReadConcepts_BadHeader(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "c.txt",
		"id\teffectiveTime\tactive\tmoduleId", // missing definitionStatusId
		"10000006\t20240401\t1\t900000000000207008",
	)

	_, err := ReadConcepts(path, 0)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
}

func TestReadConcepts_BadFieldValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
	}{
		{"bad id", "abc\t20240401\t1\t900000000000207008\t900000000000074008"},
		{"bad flag", "10000006\t20240401\t2\t900000000000207008\t900000000000074008"},
		{"bad date", "10000006\t2024\t1\t900000000000207008\t900000000000074008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeSnapshot(t, "c.txt", conceptHeader, tt.row)
			if _, err := ReadConcepts(path, 0); !errors.Is(err, domain.ErrParse) {
				t.Fatalf("want ErrParse, got %v", err)
			}
		})
	}
}

func TestReadDescriptions(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "sct2_Description_Snapshot-no_NO_20240415.txt",
		"id\teffectiveTime\tactive\tmoduleId\tconceptId\tlanguageCode\ttypeId\tterm\tcaseSignificanceId",
		"110017\t20240415\t1\t51000202101\t10000006\tno\t900000000000013009\tblodtrykk\t900000000000448009",
		"120014\t20240415\t1\t51000202101\t10000006\tno\t900000000000003001\tblodtrykk (observerbar entitet)\t900000000000448009",
	)

	descs, err := ReadDescriptions(path, 0)
	if err != nil {
		t.Fatalf("ReadDescriptions: %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("got %d rows, want 2", len(descs))
	}
	if descs[0].Type() != domain.DescriptionTypeSynonym {
		t.Errorf("first row type = %v, want synonym", descs[0].Type())
	}
	if descs[1].Type() != domain.DescriptionTypeFSN {
		t.Errorf("second row type = %v, want FSN", descs[1].Type())
	}
	if descs[0].Term != "blodtrykk" || descs[0].ConceptID != 10000006 {
		t.Errorf("unexpected row: %+v", descs[0])
	}
}

func TestReadLanguageMembers(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "der2_cRefset_LanguageSnapshot-nb_NO_20240415.txt",
		"id\teffectiveTime\tactive\tmoduleId\trefsetId\treferencedComponentId\tacceptabilityId",
		"80001f9d-8bd3-4d3c-b9f4-6d0e1b6c5a01\t20240415\t1\t51000202101\t61000202103\t110017\t900000000000548007",
	)

	members, err := ReadLanguageMembers(path, 0)
	if err != nil {
		t.Fatalf("ReadLanguageMembers: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("got %d rows, want 1", len(members))
	}
	m := members[0]
	if m.Acceptability() != domain.AcceptabilityPreferred {
		t.Errorf("acceptability = %v, want preferred", m.Acceptability())
	}
	if d, ok := m.Dialect(); !ok || d != domain.DialectNB {
		t.Errorf("dialect = (%v, %v), want nb", d, ok)
	}
	if m.ReferencedComponentID != 110017 {
		t.Errorf("referencedComponentId = %d", m.ReferencedComponentID)
	}
}

func TestReadLanguageMembers_BadUUID(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "lang.txt",
		"id\teffectiveTime\tactive\tmoduleId\trefsetId\treferencedComponentId\tacceptabilityId",
		"not-a-uuid\t20240415\t1\t51000202101\t61000202103\t110017\t900000000000548007",
	)

	if _, err := ReadLanguageMembers(path, 0); !errors.Is(err, domain.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
}

func TestReadRelationships(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "sct2_Relationship_Snapshot_INT_20240401.txt",
		"id\teffectiveTime\tactive\tmoduleId\tsourceId\tdestinationId\trelationshipGroup\ttypeId\tcharacteristicTypeId\tmodifierId",
		"100022\t20240401\t1\t900000000000207008\t10000006\t20000004\t0\t116680003\t900000000000011006\t900000000000451002",
		"100023\t20240401\t1\t900000000000207008\t10000006\t30000002\t0\t363698007\t900000000000011006\t900000000000451002",
	)

	rels, err := ReadRelationships(path, 0)
	if err != nil {
		t.Fatalf("ReadRelationships: %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("got %d rows, want 2", len(rels))
	}
	if !rels[0].IsA() {
		t.Error("first row should be an is-a edge")
	}
	if rels[1].IsA() {
		t.Error("second row should not be an is-a edge")
	}
}

func TestReadTable_EmptyLinesSkipped(t *testing.T) {
	t.Parallel()

	path := writeSnapshot(t, "c.txt",
		conceptHeader,
		"10000006\t20240401\t1\t900000000000207008\t900000000000074008",
		"",
		"20000004\t20240401\t1\t900000000000207008\t900000000000074008",
	)

	concepts, err := ReadConcepts(path, 0)
	if err != nil {
		t.Fatalf("ReadConcepts: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("got %d rows, want 2", len(concepts))
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := ReadConcepts(filepath.Join(t.TempDir(), "nope.txt"), 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}
