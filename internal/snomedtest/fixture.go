// Package snomedtest builds synthetic RF2 snapshot packages on disk for
// tests. It mirrors the real file naming so the release loader's discovery
// logic is exercised, not bypassed.
package snomedtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// MemberID returns a deterministic refset member UUID for test rows.
func MemberID(n byte) uuid.UUID {
	return uuid.UUID{15: n}
}

// PackageBuilder accumulates typed rows and writes them as one snapshot
// release package. The four required tables are always written (with just a
// header when empty); TextDefinition files only when definitions exist.
type PackageBuilder struct {
	Kind    domain.PackageKind
	Version string

	Concepts      []domain.Concept
	Descriptions  []domain.Description
	Definitions   []domain.Description
	Relationships []domain.Relationship
	Members       []domain.LanguageRefsetMember
}

const (
	conceptHeader      = "id\teffectiveTime\tactive\tmoduleId\tdefinitionStatusId"
	descriptionHeader  = "id\teffectiveTime\tactive\tmoduleId\tconceptId\tlanguageCode\ttypeId\tterm\tcaseSignificanceId"
	relationshipHeader = "id\teffectiveTime\tactive\tmoduleId\tsourceId\tdestinationId\trelationshipGroup\ttypeId\tcharacteristicTypeId\tmodifierId"
	languageHeader     = "id\teffectiveTime\tactive\tmoduleId\trefsetId\treferencedComponentId\tacceptabilityId"
)

// Write renders the package into dir using RF2 file naming.
func (b PackageBuilder) Write(t *testing.T, dir string) {
	t.Helper()

	name := func(prefix, table string) string {
		return fmt.Sprintf("%s_%s_%s_%s.txt", prefix, table, b.Kind, b.Version)
	}

	writeTable(t, filepath.Join(dir, name("sct2", "Concept_Snapshot")), conceptHeader, conceptLines(b.Concepts))
	writeTable(t, filepath.Join(dir, name("sct2", "Description_Snapshot-no")), descriptionHeader, descriptionLines(b.Descriptions))
	writeTable(t, filepath.Join(dir, name("sct2", "Relationship_Snapshot")), relationshipHeader, relationshipLines(b.Relationships))
	writeTable(t, filepath.Join(dir, name("der2_cRefset", "LanguageSnapshot-nb")), languageHeader, memberLines(b.Members))

	if len(b.Definitions) > 0 {
		writeTable(t, filepath.Join(dir, name("sct2", "TextDefinition_Snapshot-no")), descriptionHeader, descriptionLines(b.Definitions))
	}
}

func writeTable(t *testing.T, path, header string, lines []string) {
	t.Helper()
	content := header + "\n"
	if len(lines) > 0 {
		content += strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Tests rarely care about module or metadata identifiers; zero values are
// replaced with valid defaults so the reader's identifier checks pass.
const (
	defaultModuleID           domain.SCTID = 900000000000207008
	defaultDefinitionStatusID domain.SCTID = 900000000000074008
	defaultCaseSignificanceID domain.SCTID = 900000000000448009
	defaultCharacteristicID   domain.SCTID = 900000000000011006
	defaultModifierID         domain.SCTID = 900000000000451002
)

func orDefault(id, def domain.SCTID) domain.SCTID {
	if id == 0 {
		return def
	}
	return id
}

func effTime(t domain.EffectiveTime) domain.EffectiveTime {
	if t == 0 {
		return 20240101
	}
	return t
}

func lang(code string) string {
	if code == "" {
		return "no"
	}
	return code
}

func conceptLines(rows []domain.Concept) []string {
	lines := make([]string, len(rows))
	for i, c := range rows {
		lines[i] = fmt.Sprintf("%d\t%08d\t%s\t%d\t%d",
			c.ID, effTime(c.EffectiveTime), flag(c.Active),
			orDefault(c.ModuleID, defaultModuleID),
			orDefault(c.DefinitionStatusID, defaultDefinitionStatusID))
	}
	return lines
}

func descriptionLines(rows []domain.Description) []string {
	lines := make([]string, len(rows))
	for i, d := range rows {
		lines[i] = fmt.Sprintf("%d\t%08d\t%s\t%d\t%d\t%s\t%d\t%s\t%d",
			d.ID, effTime(d.EffectiveTime), flag(d.Active),
			orDefault(d.ModuleID, defaultModuleID), d.ConceptID,
			lang(d.LanguageCode), d.TypeID, d.Term,
			orDefault(d.CaseSignificanceID, defaultCaseSignificanceID))
	}
	return lines
}

func relationshipLines(rows []domain.Relationship) []string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%d\t%08d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d",
			r.ID, effTime(r.EffectiveTime), flag(r.Active),
			orDefault(r.ModuleID, defaultModuleID), r.SourceID,
			r.DestinationID, r.RelationshipGroup, r.TypeID,
			orDefault(r.CharacteristicTypeID, defaultCharacteristicID),
			orDefault(r.ModifierID, defaultModifierID))
	}
	return lines
}

func memberLines(rows []domain.LanguageRefsetMember) []string {
	lines := make([]string, len(rows))
	for i, m := range rows {
		lines[i] = fmt.Sprintf("%s\t%08d\t%s\t%d\t%d\t%d\t%d",
			m.ID, effTime(m.EffectiveTime), flag(m.Active),
			orDefault(m.ModuleID, defaultModuleID), m.RefsetID,
			m.ReferencedComponentID, m.AcceptabilityID)
	}
	return lines
}
