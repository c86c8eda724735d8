// Package release loads RF2 snapshot packages into deduplicated,
// latest-effective-time collections and merges a dependent national
// extension onto its international base.
package release

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/rf2"
)

// Options are configuration-time load filters, applied uniformly across all
// collections. Zero values disable them; they exist for test and debug runs.
type Options struct {
	// Limit caps the number of rows scanned per snapshot table.
	Limit int

	// IDFilter restricts loading to rows whose concept identifier — directly
	// or via foreign key — is in the set. Language members are kept when
	// they reference a retained description or definition; relationships
	// when their source concept is in the set.
	IDFilter []domain.SCTID
}

// Set holds one release package's snapshot tables, deduplicated to the
// latest-effective-time row per identifier. Activity is preserved as a
// field, not used for filtering at this stage. Downstream stages never
// mutate a Set; merge and denormalization return derived views.
type Set struct {
	Kind    domain.PackageKind
	Version string

	Concepts        map[domain.SCTID]domain.Concept
	Descriptions    map[domain.SCTID]domain.Description
	Definitions     map[domain.SCTID]domain.Description
	Relationships   map[domain.SCTID]domain.Relationship
	LanguageMembers map[uuid.UUID]domain.LanguageRefsetMember
}

// Load reads the snapshot package of the given kind from dir, deduplicates
// every table by identifier keeping the maximum effective time, and applies
// the load options. Missing required files fail with ErrConfiguration.
func Load(dir string, kind domain.PackageKind, opts Options) (*Set, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown package kind %q: %w", kind, domain.ErrConfiguration)
	}

	files, err := discoverFiles(dir, kind)
	if err != nil {
		return nil, err
	}
	version, err := releaseVersion(files)
	if err != nil {
		return nil, err
	}

	concepts, err := readAll(files.Concepts, opts.Limit, rf2.ReadConcepts)
	if err != nil {
		return nil, fmt.Errorf("load %s concepts: %w", kind, err)
	}
	descriptions, err := readAll(files.Descriptions, opts.Limit, rf2.ReadDescriptions)
	if err != nil {
		return nil, fmt.Errorf("load %s descriptions: %w", kind, err)
	}
	definitions, err := readAll(files.TextDefinitions, opts.Limit, rf2.ReadDescriptions)
	if err != nil {
		return nil, fmt.Errorf("load %s text definitions: %w", kind, err)
	}
	relationships, err := readAll(files.Relationships, opts.Limit, rf2.ReadRelationships)
	if err != nil {
		return nil, fmt.Errorf("load %s relationships: %w", kind, err)
	}
	members, err := readAll(files.Language, opts.Limit, rf2.ReadLanguageMembers)
	if err != nil {
		return nil, fmt.Errorf("load %s language refsets: %w", kind, err)
	}

	s := &Set{
		Kind:    kind,
		Version: version,

		Concepts: reduceLatest(concepts,
			func(c domain.Concept) domain.SCTID { return c.ID },
			func(c domain.Concept) domain.EffectiveTime { return c.EffectiveTime }),
		Descriptions: reduceLatest(descriptions,
			func(d domain.Description) domain.SCTID { return d.ID },
			func(d domain.Description) domain.EffectiveTime { return d.EffectiveTime }),
		Definitions: reduceLatest(definitions,
			func(d domain.Description) domain.SCTID { return d.ID },
			func(d domain.Description) domain.EffectiveTime { return d.EffectiveTime }),
		Relationships: reduceLatest(relationships,
			func(r domain.Relationship) domain.SCTID { return r.ID },
			func(r domain.Relationship) domain.EffectiveTime { return r.EffectiveTime }),
		LanguageMembers: reduceLatest(members,
			func(m domain.LanguageRefsetMember) uuid.UUID { return m.ID },
			func(m domain.LanguageRefsetMember) domain.EffectiveTime { return m.EffectiveTime }),
	}

	if len(opts.IDFilter) > 0 {
		s.filterByConceptIDs(opts.IDFilter)
	}

	return s, nil
}

// readAll reads and concatenates every file of one table. The row limit is
// shared across the table's files, not per file.
func readAll[T any](paths []string, limit int, read func(string, int) ([]T, error)) ([]T, error) {
	var rows []T
	for _, path := range paths {
		remaining := 0
		if limit > 0 {
			remaining = limit - len(rows)
			if remaining <= 0 {
				break
			}
		}
		r, err := read(path, remaining)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r...)
	}
	return rows, nil
}

// reduceLatest groups rows by key and keeps the row with the maximum
// effective time. On equal effective times the later-read row wins, which is
// deterministic because file read order is sorted.
func reduceLatest[K comparable, R any](rows []R, key func(R) K, eff func(R) domain.EffectiveTime) map[K]R {
	out := make(map[K]R, len(rows))
	for _, row := range rows {
		k := key(row)
		if cur, ok := out[k]; !ok || eff(row) >= eff(cur) {
			out[k] = row
		}
	}
	return out
}

// filterByConceptIDs restricts all collections to the given concepts before
// any downstream stage sees the data.
func (s *Set) filterByConceptIDs(ids []domain.SCTID) {
	keep := make(map[domain.SCTID]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	for id := range s.Concepts {
		if !keep[id] {
			delete(s.Concepts, id)
		}
	}

	components := make(map[domain.SCTID]bool)
	for id, d := range s.Descriptions {
		if !keep[d.ConceptID] {
			delete(s.Descriptions, id)
			continue
		}
		components[id] = true
	}
	for id, d := range s.Definitions {
		if !keep[d.ConceptID] {
			delete(s.Definitions, id)
			continue
		}
		components[id] = true
	}

	for id, m := range s.LanguageMembers {
		if !components[m.ReferencedComponentID] {
			delete(s.LanguageMembers, id)
		}
	}

	for id, r := range s.Relationships {
		if !keep[r.SourceID] {
			delete(s.Relationships, id)
		}
	}
}
