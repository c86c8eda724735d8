package domain

import "github.com/google/uuid"

// EffectiveTime is an RF2 snapshot date in YYYYMMDD form. Dates compare
// numerically; zero means absent.
type EffectiveTime int

// Concept is one row of a Concept snapshot table.
type Concept struct {
	ID                 SCTID
	EffectiveTime      EffectiveTime
	Active             bool
	ModuleID           SCTID
	DefinitionStatusID SCTID
}

// Description is one row of a Description or TextDefinition snapshot table.
// A description names its owning concept in one language; only synonym-class
// rows participate in term denormalization.
type Description struct {
	ID                 SCTID
	EffectiveTime      EffectiveTime
	Active             bool
	ModuleID           SCTID
	ConceptID          SCTID
	LanguageCode       string
	TypeID             SCTID
	Term               string
	CaseSignificanceID SCTID
}

// Type returns the description class derived from TypeID.
func (d Description) Type() DescriptionType { return DescriptionTypeFromID(d.TypeID) }

// Relationship is one row of a Relationship snapshot table. Only active
// is-a rows contribute parent edges.
type Relationship struct {
	ID                   SCTID
	EffectiveTime        EffectiveTime
	Active               bool
	ModuleID             SCTID
	SourceID             SCTID
	DestinationID        SCTID
	RelationshipGroup    int
	TypeID               SCTID
	CharacteristicTypeID SCTID
	ModifierID           SCTID
}

// IsA reports whether the row is a subtype (is-a) edge.
func (r Relationship) IsA() bool { return r.TypeID == TypeIsA }

// LanguageRefsetMember is one row of a language reference set snapshot.
// Unlike core components, refset members are identified by UUID.
// ReferencedComponentID points at a Description row.
type LanguageRefsetMember struct {
	ID                    uuid.UUID
	EffectiveTime         EffectiveTime
	Active                bool
	ModuleID              SCTID
	RefsetID              SCTID
	ReferencedComponentID SCTID
	AcceptabilityID       SCTID
}

// Acceptability returns the enumerated acceptability value.
func (m LanguageRefsetMember) Acceptability() Acceptability {
	return AcceptabilityFromID(m.AcceptabilityID)
}

// Dialect returns the dialect of the member's refset, if it is one of the
// recognized regular-language sets.
func (m LanguageRefsetMember) Dialect() (Dialect, bool) {
	return DialectForRefset(m.RefsetID)
}
