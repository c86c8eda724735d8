package release

import (
	"maps"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// ValidateDependency checks the national package's declared dependency
// version against the loaded international release version. A mismatch
// returns a *domain.VersionMismatchError; the caller decides whether an
// override lets the run proceed.
func ValidateDependency(intl *Set, declared string) error {
	if declared == intl.Version {
		return nil
	}
	return &domain.VersionMismatchError{Expected: declared, Actual: intl.Version}
}

// Merge combines the international base with the national extension into one
// unified Set. For every entity type the deduplicated rows of both packages
// are reduced again by identifier: the later effective time wins, and on
// ties the national row wins (extension overrides base). This is the only
// place cross-package identifier collisions are resolved. Inputs are not
// mutated.
func Merge(intl, nat *Set) *Set {
	return &Set{
		Kind:    nat.Kind,
		Version: nat.Version,

		Concepts: mergeLatest(intl.Concepts, nat.Concepts,
			func(c domain.Concept) domain.EffectiveTime { return c.EffectiveTime }),
		Descriptions: mergeLatest(intl.Descriptions, nat.Descriptions,
			func(d domain.Description) domain.EffectiveTime { return d.EffectiveTime }),
		Definitions: mergeLatest(intl.Definitions, nat.Definitions,
			func(d domain.Description) domain.EffectiveTime { return d.EffectiveTime }),
		Relationships: mergeLatest(intl.Relationships, nat.Relationships,
			func(r domain.Relationship) domain.EffectiveTime { return r.EffectiveTime }),
		LanguageMembers: mergeLatest(intl.LanguageMembers, nat.LanguageMembers,
			func(m domain.LanguageRefsetMember) domain.EffectiveTime { return m.EffectiveTime }),
	}
}

// mergeLatest overlays ext onto base: an ext row replaces a base row with
// the same key unless the base row has a strictly later effective time.
func mergeLatest[K comparable, R any](base, ext map[K]R, eff func(R) domain.EffectiveTime) map[K]R {
	out := make(map[K]R, len(base)+len(ext))
	maps.Copy(out, base)
	for k, row := range ext {
		if cur, ok := out[k]; !ok || eff(row) >= eff(cur) {
			out[k] = row
		}
	}
	return out
}
