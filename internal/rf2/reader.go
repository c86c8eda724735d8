// Package rf2 decodes tab-delimited SNOMED CT RF2 snapshot files into typed
// rows. Pure functions: file path in, rows out. No deduplication or
// domain-level filtering happens here — that is layered above so the format
// decode stays independent of merge semantics.
package rf2

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// RF2 terms stay well under this, but descriptions can be long.
const maxLineBytes = 1024 * 1024

// ReadConcepts reads a Concept snapshot file. A limit > 0 caps the number of
// data rows read; 0 means unlimited.
func ReadConcepts(path string, limit int) ([]domain.Concept, error) {
	return readTable(path, conceptColumns, limit, func(r *rowReader) domain.Concept {
		return domain.Concept{
			ID:                 r.sctid(0),
			EffectiveTime:      r.date(1),
			Active:             r.flag(2),
			ModuleID:           r.sctid(3),
			DefinitionStatusID: r.sctid(4),
		}
	})
}

// ReadDescriptions reads a Description or TextDefinition snapshot file; the
// two share a layout.
func ReadDescriptions(path string, limit int) ([]domain.Description, error) {
	return readTable(path, descriptionColumns, limit, func(r *rowReader) domain.Description {
		return domain.Description{
			ID:                 r.sctid(0),
			EffectiveTime:      r.date(1),
			Active:             r.flag(2),
			ModuleID:           r.sctid(3),
			ConceptID:          r.sctid(4),
			LanguageCode:       r.text(5),
			TypeID:             r.sctid(6),
			Term:               r.text(7),
			CaseSignificanceID: r.sctid(8),
		}
	})
}

// ReadRelationships reads a Relationship snapshot file.
func ReadRelationships(path string, limit int) ([]domain.Relationship, error) {
	return readTable(path, relationshipColumns, limit, func(r *rowReader) domain.Relationship {
		return domain.Relationship{
			ID:                   r.sctid(0),
			EffectiveTime:        r.date(1),
			Active:               r.flag(2),
			ModuleID:             r.sctid(3),
			SourceID:             r.sctid(4),
			DestinationID:        r.sctid(5),
			RelationshipGroup:    r.integer(6),
			TypeID:               r.sctid(7),
			CharacteristicTypeID: r.sctid(8),
			ModifierID:           r.sctid(9),
		}
	})
}

// ReadLanguageMembers reads a language reference set snapshot file.
func ReadLanguageMembers(path string, limit int) ([]domain.LanguageRefsetMember, error) {
	return readTable(path, languageColumns, limit, func(r *rowReader) domain.LanguageRefsetMember {
		return domain.LanguageRefsetMember{
			ID:                    r.memberID(0),
			EffectiveTime:         r.date(1),
			Active:                r.flag(2),
			ModuleID:              r.sctid(3),
			RefsetID:              r.sctid(4),
			ReferencedComponentID: r.sctid(5),
			AcceptabilityID:       r.sctid(6),
		}
	})
}

// readTable streams a snapshot file line by line, validates the header and
// per-row field counts, and decodes each row via decode. The file handle is
// released on return regardless of outcome.
func readTable[T any](path string, columns []string, limit int, decode func(*rowReader) T) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	file := filepath.Base(path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return nil, domain.NewParseError(file, 1, "empty file, expected header %q", strings.Join(columns, "\t"))
	}
	header := strings.Split(scanner.Text(), "\t")
	if err := checkHeader(file, header, columns); err != nil {
		return nil, err
	}

	var rows []T
	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != len(columns) {
			return nil, domain.NewParseError(file, line, "expected %d fields, got %d", len(columns), len(fields))
		}

		r := rowReader{file: file, line: line, fields: fields}
		row := decode(&r)
		if r.err != nil {
			return nil, r.err
		}

		rows = append(rows, row)
		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	return rows, nil
}

func checkHeader(file string, header, columns []string) error {
	if len(header) != len(columns) {
		return domain.NewParseError(file, 1, "header has %d columns, expected %d", len(header), len(columns))
	}
	for i, name := range columns {
		if header[i] != name {
			return domain.NewParseError(file, 1, "header column %d is %q, expected %q", i+1, header[i], name)
		}
	}
	return nil
}

// rowReader decodes one row's fields by position, recording the first
// decode failure as a ParseError.
type rowReader struct {
	file   string
	line   int
	fields []string
	err    error
}

func (r *rowReader) fail(i int, format string, args ...any) {
	if r.err == nil {
		r.err = domain.NewParseError(r.file, r.line, "field %d: "+format, append([]any{i + 1}, args...)...)
	}
}

func (r *rowReader) text(i int) string { return r.fields[i] }

func (r *rowReader) sctid(i int) domain.SCTID {
	id, err := domain.ParseSCTID(r.fields[i])
	if err != nil {
		r.fail(i, "invalid identifier %q", r.fields[i])
		return 0
	}
	return id
}

func (r *rowReader) memberID(i int) uuid.UUID {
	id, err := uuid.Parse(r.fields[i])
	if err != nil {
		r.fail(i, "invalid member uuid %q", r.fields[i])
		return uuid.Nil
	}
	return id
}

func (r *rowReader) flag(i int) bool {
	switch r.fields[i] {
	case "1":
		return true
	case "0":
		return false
	}
	r.fail(i, "invalid active flag %q", r.fields[i])
	return false
}

func (r *rowReader) date(i int) domain.EffectiveTime {
	s := r.fields[i]
	if len(s) != 8 {
		r.fail(i, "invalid effective time %q", s)
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		r.fail(i, "invalid effective time %q", s)
		return 0
	}
	return domain.EffectiveTime(v)
}

func (r *rowReader) integer(i int) int {
	v, err := strconv.Atoi(r.fields[i])
	if err != nil {
		r.fail(i, "invalid integer %q", r.fields[i])
		return 0
	}
	return v
}
