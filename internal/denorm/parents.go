package denorm

import (
	"sort"

	"github.com/larsivik/snomed-catalog/internal/domain"
	"github.com/larsivik/snomed-catalog/internal/release"
)

// AttachParents fills in each record's ParentIDs from the merged set's active
// is-a edges. Only one hop is resolved; transitive closure is out of scope.
// Parents are deduplicated and sorted ascending. Records are mutated in place.
func AttachParents(records []domain.ConceptRecord, s *release.Set) {
	parents := map[domain.SCTID]map[domain.SCTID]bool{}
	for _, r := range s.Relationships {
		if !r.Active || !r.IsA() {
			continue
		}
		set := parents[r.SourceID]
		if set == nil {
			set = map[domain.SCTID]bool{}
			parents[r.SourceID] = set
		}
		set[r.DestinationID] = true
	}

	// Dialect records for the same concept share the same parent slice
	// contents; they are computed once and reused.
	sorted := map[domain.SCTID][]domain.SCTID{}
	for i := range records {
		id := records[i].ConceptID
		ids, ok := sorted[id]
		if !ok {
			for p := range parents[id] {
				ids = append(ids, p)
			}
			sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
			sorted[id] = ids
		}
		records[i].ParentIDs = ids
	}
}
