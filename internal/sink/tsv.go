// Package sink serializes denormalized records. The flat tab-delimited layout
// mirrors the snapshot input format so downstream tooling can reuse the same
// loaders.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

const (
	conceptRecordHeader    = "conceptId\tlanguage\tfsn\tpreferredTerms\tacceptableTerms\tparentIds"
	definitionRecordHeader = "conceptId\tlanguage\tdefinition"

	// listSeparator joins multi-valued columns. Terms containing the pipe
	// character do not occur in SNOMED CT releases.
	listSeparator = "|"
)

// WriteConceptRecords writes records as tab-delimited rows with a header
// line. The caller is responsible for record ordering.
func WriteConceptRecords(w io.Writer, records []domain.ConceptRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, conceptRecordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		_, err := fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			rec.ConceptID, rec.Language, rec.FSN,
			strings.Join(rec.PreferredTerms, listSeparator),
			strings.Join(rec.AcceptableTerms, listSeparator),
			joinIDs(rec.ParentIDs))
		if err != nil {
			return fmt.Errorf("write record for concept %d: %w", rec.ConceptID, err)
		}
	}
	return bw.Flush()
}

// WriteDefinitionRecords writes textual definitions as tab-delimited rows
// with a header line.
func WriteDefinitionRecords(w io.Writer, records []domain.DefinitionRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, definitionRecordHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		_, err := fmt.Fprintf(bw, "%d\t%s\t%s\n", rec.ConceptID, rec.Language, rec.Definition)
		if err != nil {
			return fmt.Errorf("write definition for concept %d: %w", rec.ConceptID, err)
		}
	}
	return bw.Flush()
}

func joinIDs(ids []domain.SCTID) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, listSeparator)
}
