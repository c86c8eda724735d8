package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

func TestWriteConceptRecords(t *testing.T) {
	t.Parallel()

	records := []domain.ConceptRecord{
		{
			ConceptID:       10000006,
			Language:        domain.DialectNB,
			FSN:             "Blood pressure (observable entity)",
			PreferredTerms:  []string{"blodtrykk"},
			AcceptableTerms: []string{"BT", "arterielt trykk"},
			ParentIDs:       []domain.SCTID{20000004, 30000002},
		},
		{
			ConceptID: 10000006,
			Language:  domain.DialectNN,
			FSN:       "Blood pressure (observable entity)",
			// Sparse row: no preferred term, no parents resolved.
			AcceptableTerms: []string{"blodtrykk"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteConceptRecords(&buf, records))

	want := "conceptId\tlanguage\tfsn\tpreferredTerms\tacceptableTerms\tparentIds\n" +
		"10000006\tnb\tBlood pressure (observable entity)\tblodtrykk\tBT|arterielt trykk\t20000004|30000002\n" +
		"10000006\tnn\tBlood pressure (observable entity)\t\tblodtrykk\t\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteConceptRecords_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteConceptRecords(&buf, nil))
	assert.Equal(t, "conceptId\tlanguage\tfsn\tpreferredTerms\tacceptableTerms\tparentIds\n", buf.String())
}

func TestWriteDefinitionRecords(t *testing.T) {
	t.Parallel()

	records := []domain.DefinitionRecord{
		{ConceptID: 10000006, Language: domain.DialectNB, Definition: "Trykket blodet utøver mot åreveggene."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDefinitionRecords(&buf, records))

	want := "conceptId\tlanguage\tdefinition\n" +
		"10000006\tnb\tTrykket blodet utøver mot åreveggene.\n"
	assert.Equal(t, want, buf.String())
}
