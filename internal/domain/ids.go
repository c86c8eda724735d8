package domain

import (
	"fmt"
	"strconv"
)

// SCTID is a SNOMED CT component identifier. Identifiers are opaque 64-bit
// unsigned integers, globally unique across release packages.
type SCTID uint64

func (id SCTID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseSCTID parses a decimal SNOMED CT identifier. Zero is not a valid
// component identifier.
func ParseSCTID(s string) (SCTID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sctid %q: %w", s, ErrValidation)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid sctid %q: zero: %w", s, ErrValidation)
	}
	return SCTID(v), nil
}

// Well-known metadata concept identifiers from the International Edition.
const (
	// Description type identifiers.
	TypeFSN        SCTID = 900000000000003001
	TypeSynonym    SCTID = 900000000000013009
	TypeDefinition SCTID = 900000000000550004

	// Language refset acceptability values.
	AcceptabilityPreferredID  SCTID = 900000000000548007
	AcceptabilityAcceptableID SCTID = 900000000000549004

	// Relationship type for subtype (is-a) edges.
	TypeIsA SCTID = 116680003
)

// Norwegian regular-language reference sets. Only these two refsets surface
// terms in the denormalized output; GP and English refsets are ignored.
const (
	RefsetLanguageNB SCTID = 61000202103
	RefsetLanguageNN SCTID = 91000202106
)
