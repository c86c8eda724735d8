package domain

import "testing"

func TestPackageKind_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind PackageKind
		want bool
	}{
		{PackageInternational, true},
		{PackageNational, true},
		{PackageKind("SE"), false},
		{PackageKind(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("PackageKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestDescriptionTypeFromID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   SCTID
		want DescriptionType
	}{
		{TypeFSN, DescriptionTypeFSN},
		{TypeSynonym, DescriptionTypeSynonym},
		{TypeDefinition, DescriptionTypeDefinition},
		{TypeIsA, DescriptionTypeUnknown},
		{0, DescriptionTypeUnknown},
	}
	for _, tt := range tests {
		if got := DescriptionTypeFromID(tt.id); got != tt.want {
			t.Errorf("DescriptionTypeFromID(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestAcceptabilityFromID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   SCTID
		want Acceptability
	}{
		{AcceptabilityPreferredID, AcceptabilityPreferred},
		{AcceptabilityAcceptableID, AcceptabilityAcceptable},
		{TypeSynonym, AcceptabilityUnknown},
	}
	for _, tt := range tests {
		if got := AcceptabilityFromID(tt.id); got != tt.want {
			t.Errorf("AcceptabilityFromID(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestDialectForRefset(t *testing.T) {
	t.Parallel()

	if d, ok := DialectForRefset(RefsetLanguageNB); !ok || d != DialectNB {
		t.Errorf("RefsetLanguageNB: got (%v, %v)", d, ok)
	}
	if d, ok := DialectForRefset(RefsetLanguageNN); !ok || d != DialectNN {
		t.Errorf("RefsetLanguageNN: got (%v, %v)", d, ok)
	}
	// English and GP refsets are not recognized.
	if _, ok := DialectForRefset(900000000000509007); ok {
		t.Error("en-US refset should not map to a dialect")
	}
	if _, ok := DialectForRefset(0); ok {
		t.Error("zero refset should not map to a dialect")
	}
}
