package release

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// packageFiles holds the discovered snapshot files for one release package.
// Description, TextDefinition and Language tables may ship split across
// several files (one per language); Concept and Relationship normally ship
// as a single file each.
type packageFiles struct {
	Concepts        []string
	Descriptions    []string
	TextDefinitions []string
	Relationships   []string
	Language        []string
}

// File-name markers for the snapshot tables. The leading underscore keeps
// Relationship from matching StatedRelationship files.
const (
	markerConcept        = "_Concept_Snapshot"
	markerDescription    = "_Description_Snapshot"
	markerTextDefinition = "_TextDefinition_Snapshot"
	markerRelationship   = "_Relationship_Snapshot"
	markerLanguage       = "_LanguageSnapshot"
)

var releaseDateRe = regexp.MustCompile(`_(\d{8})\.txt$`)

// discoverFiles walks dir for the snapshot files belonging to the given
// package kind. Required file presence is a configuration contract: a
// package without Concept, Description, Relationship and Language snapshots
// fails with ErrConfiguration. TextDefinition files are optional.
func discoverFiles(dir string, kind domain.PackageKind) (packageFiles, error) {
	var files packageFiles

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		name := d.Name()
		if !hasKindSegment(name, kind) {
			return nil
		}

		switch {
		case strings.Contains(name, markerConcept):
			files.Concepts = append(files.Concepts, path)
		case strings.Contains(name, markerDescription):
			files.Descriptions = append(files.Descriptions, path)
		case strings.Contains(name, markerTextDefinition):
			files.TextDefinitions = append(files.TextDefinitions, path)
		case strings.Contains(name, markerRelationship):
			files.Relationships = append(files.Relationships, path)
		case strings.Contains(name, markerLanguage):
			files.Language = append(files.Language, path)
		}
		return nil
	})
	if err != nil {
		return packageFiles{}, fmt.Errorf("scan input directory %s: %w", dir, err)
	}

	// Deterministic read order regardless of filesystem iteration.
	sort.Strings(files.Concepts)
	sort.Strings(files.Descriptions)
	sort.Strings(files.TextDefinitions)
	sort.Strings(files.Relationships)
	sort.Strings(files.Language)

	for table, found := range map[string][]string{
		"Concept":      files.Concepts,
		"Description":  files.Descriptions,
		"Relationship": files.Relationships,
		"Language":     files.Language,
	} {
		if len(found) == 0 {
			return packageFiles{}, fmt.Errorf("package %s: no %s snapshot file under %s: %w",
				kind, table, dir, domain.ErrConfiguration)
		}
	}

	return files, nil
}

// hasKindSegment reports whether the file name carries the package kind as
// an underscore-delimited segment, e.g. sct2_Concept_Snapshot_INT_20240401.txt.
func hasKindSegment(name string, kind domain.PackageKind) bool {
	name = strings.TrimSuffix(name, ".txt")
	for _, seg := range strings.Split(name, "_") {
		if seg == string(kind) {
			return true
		}
	}
	return false
}

// releaseVersion extracts the release date stamp from the package's Concept
// snapshot file name. The stamp doubles as the release version in dependency
// declarations.
func releaseVersion(files packageFiles) (string, error) {
	for _, path := range files.Concepts {
		if m := releaseDateRe.FindStringSubmatch(filepath.Base(path)); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("no release date stamp in concept file name %s: %w",
		filepath.Base(files.Concepts[0]), domain.ErrConfiguration)
}
