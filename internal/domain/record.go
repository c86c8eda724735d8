package domain

// ConceptRecord is one denormalized output row: the resolved terms for one
// concept in one dialect. Records carry no identity of their own — they are
// fully reconstructed from the snapshot inputs on every run.
type ConceptRecord struct {
	ConceptID SCTID
	Language  Dialect

	// FSN is the concept's fully specified name, carried for display context.
	// It never participates in the preferred/acceptable partition.
	FSN string

	// PreferredTerms usually holds a single term, but inconsistent source
	// data can mark several descriptions preferred for the same dialect.
	// All of them are preserved; uniqueness is never enforced here.
	PreferredTerms  []string
	AcceptableTerms []string

	// ParentIDs are the destinations of the concept's active is-a edges,
	// sorted ascending. Empty when the concept has no parents.
	ParentIDs []SCTID
}

// DefinitionRecord is one denormalized textual definition for a concept in
// one dialect.
type DefinitionRecord struct {
	ConceptID  SCTID
	Language   Dialect
	Definition string
}
