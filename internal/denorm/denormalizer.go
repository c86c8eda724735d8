// Package denorm flattens a merged release set into per-concept, per-dialect
// term records. It is the read side of the pipeline: pure functions over an
// already loaded and merged Set, no I/O.
package denorm

import (
	"sort"

	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/release"
)

// Stats counts data anomalies observed while denormalizing. Anomalies are
// reported, never fatal: national extensions routinely ship refset rows whose
// target lives in a module outside the loaded packages.
type Stats struct {
	// OrphanRefsetEntries counts active language members whose referenced
	// description is absent from the merged set.
	OrphanRefsetEntries int

	// InactiveComponentRefs counts active language members pointing at an
	// inactive description or at a description of an inactive concept.
	InactiveComponentRefs int

	// MultiPreferred counts dialect buckets that ended up with more than one
	// preferred term.
	MultiPreferred int
}

type bucketKey struct {
	conceptID domain.SCTID
	dialect   domain.Dialect
}

type termRef struct {
	term   string
	descID domain.SCTID
}

type bucket struct {
	preferred  []termRef
	acceptable []termRef
}

// Denormalize resolves the merged set into one record per concept and dialect
// that has at least one active term. Only active synonym descriptions with an
// active regular-language refset membership contribute; there is no fallback
// on description language codes. Records are sorted by concept identifier,
// then dialect, and the term lists within a record by term, then description
// identifier, so equal inputs always produce byte-equal output.
func Denormalize(s *release.Set) ([]domain.ConceptRecord, Stats) {
	var stats Stats

	buckets := map[bucketKey]*bucket{}
	for _, m := range s.LanguageMembers {
		if !m.Active {
			continue
		}
		dialect, ok := m.Dialect()
		if !ok {
			continue
		}

		d, ok := s.Descriptions[m.ReferencedComponentID]
		if !ok {
			if _, isDefinition := s.Definitions[m.ReferencedComponentID]; isDefinition {
				continue // handled by DenormalizeDefinitions
			}
			stats.OrphanRefsetEntries++
			continue
		}
		if d.Type() != domain.DescriptionTypeSynonym {
			continue
		}
		concept, ok := s.Concepts[d.ConceptID]
		if !d.Active || !ok || !concept.Active {
			stats.InactiveComponentRefs++
			continue
		}

		key := bucketKey{conceptID: d.ConceptID, dialect: dialect}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		ref := termRef{term: d.Term, descID: d.ID}
		switch m.Acceptability() {
		case domain.AcceptabilityPreferred:
			b.preferred = append(b.preferred, ref)
		case domain.AcceptabilityAcceptable:
			b.acceptable = append(b.acceptable, ref)
		}
	}

	fsns := fsnByConcept(s)

	records := make([]domain.ConceptRecord, 0, len(buckets))
	for key, b := range buckets {
		if len(b.preferred) == 0 && len(b.acceptable) == 0 {
			continue
		}
		if len(b.preferred) > 1 {
			stats.MultiPreferred++
		}
		records = append(records, domain.ConceptRecord{
			ConceptID:       key.conceptID,
			Language:        key.dialect,
			FSN:             fsns[key.conceptID],
			PreferredTerms:  sortedTerms(b.preferred),
			AcceptableTerms: sortedTerms(b.acceptable),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ConceptID != records[j].ConceptID {
			return records[i].ConceptID < records[j].ConceptID
		}
		return records[i].Language < records[j].Language
	})

	return records, stats
}

// fsnByConcept picks one fully specified name per active concept: the active
// FSN row with the latest effective time, lowest description identifier on
// ties.
func fsnByConcept(s *release.Set) map[domain.SCTID]string {
	chosen := map[domain.SCTID]domain.Description{}
	for _, d := range s.Descriptions {
		if !d.Active || d.Type() != domain.DescriptionTypeFSN {
			continue
		}
		if concept, ok := s.Concepts[d.ConceptID]; !ok || !concept.Active {
			continue
		}
		cur, ok := chosen[d.ConceptID]
		if !ok || d.EffectiveTime > cur.EffectiveTime ||
			(d.EffectiveTime == cur.EffectiveTime && d.ID < cur.ID) {
			chosen[d.ConceptID] = d
		}
	}

	out := make(map[domain.SCTID]string, len(chosen))
	for id, d := range chosen {
		out[id] = d.Term
	}
	return out
}

func sortedTerms(refs []termRef) []string {
	if len(refs) == 0 {
		return nil
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].term != refs[j].term {
			return refs[i].term < refs[j].term
		}
		return refs[i].descID < refs[j].descID
	})
	terms := make([]string, len(refs))
	for i, r := range refs {
		terms[i] = r.term
	}
	return terms
}
