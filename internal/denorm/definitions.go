package denorm

import (
	"sort"

	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/release"
)

// DenormalizeDefinitions resolves textual definitions the same way terms are
// resolved: an active text definition row of an active concept surfaces in a
// dialect only through an active regular-language refset membership. The
// member's acceptability does not matter for definitions. Output is sorted by
// concept identifier, dialect, then definition text.
func DenormalizeDefinitions(s *release.Set) []domain.DefinitionRecord {
	seen := map[domain.DefinitionRecord]bool{}
	var records []domain.DefinitionRecord
	for _, m := range s.LanguageMembers {
		if !m.Active {
			continue
		}
		dialect, ok := m.Dialect()
		if !ok {
			continue
		}
		d, ok := s.Definitions[m.ReferencedComponentID]
		if !ok || !d.Active {
			continue
		}
		if concept, ok := s.Concepts[d.ConceptID]; !ok || !concept.Active {
			continue
		}
		rec := domain.DefinitionRecord{
			ConceptID:  d.ConceptID,
			Language:   dialect,
			Definition: d.Term,
		}
		if seen[rec] {
			continue
		}
		seen[rec] = true
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.ConceptID != b.ConceptID {
			return a.ConceptID < b.ConceptID
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.Definition < b.Definition
	})

	return records
}
