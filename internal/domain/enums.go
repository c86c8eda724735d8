package domain

// PackageKind identifies a release package edition. It controls which
// snapshot files are mandatory when loading a package, nothing more.
type PackageKind string

const (
	PackageInternational PackageKind = "INT"
	PackageNational      PackageKind = "NO"
)

func (k PackageKind) String() string { return string(k) }

func (k PackageKind) IsValid() bool {
	switch k {
	case PackageInternational, PackageNational:
		return true
	}
	return false
}

// DescriptionType is the class of a description row.
type DescriptionType string

const (
	DescriptionTypeFSN        DescriptionType = "FSN"
	DescriptionTypeSynonym    DescriptionType = "SYNONYM"
	DescriptionTypeDefinition DescriptionType = "DEFINITION"
	DescriptionTypeUnknown    DescriptionType = "UNKNOWN"
)

func (t DescriptionType) String() string { return string(t) }

// DescriptionTypeFromID maps a typeId to its description class.
func DescriptionTypeFromID(id SCTID) DescriptionType {
	switch id {
	case TypeFSN:
		return DescriptionTypeFSN
	case TypeSynonym:
		return DescriptionTypeSynonym
	case TypeDefinition:
		return DescriptionTypeDefinition
	}
	return DescriptionTypeUnknown
}

// Acceptability is the value of a language refset membership.
type Acceptability string

const (
	AcceptabilityPreferred  Acceptability = "PREFERRED"
	AcceptabilityAcceptable Acceptability = "ACCEPTABLE"
	AcceptabilityUnknown    Acceptability = "UNKNOWN"
)

func (a Acceptability) String() string { return string(a) }

// AcceptabilityFromID maps an acceptabilityId to its enumerated value.
func AcceptabilityFromID(id SCTID) Acceptability {
	switch id {
	case AcceptabilityPreferredID:
		return AcceptabilityPreferred
	case AcceptabilityAcceptableID:
		return AcceptabilityAcceptable
	}
	return AcceptabilityUnknown
}

// Dialect is a written Norwegian language variant surfaced in the output.
type Dialect string

const (
	DialectNB Dialect = "nb"
	DialectNN Dialect = "nn"
)

func (d Dialect) String() string { return string(d) }

// Dialects returns the recognized dialects in output order.
func Dialects() []Dialect { return []Dialect{DialectNB, DialectNN} }

// DialectForRefset maps a language refset identifier to its dialect.
// Returns false for any refset that is not one of the two regular-language
// sets (GP refsets, English refsets, and anything else are not recognized).
func DialectForRefset(refsetID SCTID) (Dialect, bool) {
	switch refsetID {
	case RefsetLanguageNB:
		return DialectNB, true
	case RefsetLanguageNN:
		return DialectNN, true
	}
	return "", false
}
