package manifest

import (
	"fmt"
	"strings"

	"github.com/fortbuild/fortbuild/internal/document"
)

// PreprocessorConfig holds configuration for a single preprocessor declared
// in the manifest's [preprocess] section.
//
// Each list field is tri-state: a nil slice means the key was absent from the
// document, while a non-nil empty slice means the key was present with an
// empty list. Dump and Equal preserve that distinction.
type PreprocessorConfig struct {
	// Name is the key of the enclosing table entry, e.g. "cpp" for
	// [preprocess.cpp]. Empty only before the entity is populated.
	Name string

	// Suffixes is the list of file extensions this preprocessor claims
	Suffixes []string

	// Directories is the list of source directories to scan
	Directories []string

	// Macros is the list of macro definitions passed to the preprocessor
	Macros []string
}

// preprocessorKeys is the full set of keys a preprocessor entry may contain
var preprocessorKeys = []string{"suffixes", "directories", "macros"}

// ParsePreprocessor builds one preprocessor from its table entry. The name
// comes from the enclosing key, not from a value inside the table, so the
// caller passes it in. The table is schema-checked before any field is read.
func ParsePreprocessor(name string, table *document.Table) (*PreprocessorConfig, error) {
	if err := checkAllowedKeys("preprocessor", name, table, preprocessorKeys); err != nil {
		return nil, err
	}

	cfg := &PreprocessorConfig{Name: name}

	var err error
	if cfg.Suffixes, _, err = table.OptionalStringList("suffixes"); err != nil {
		return nil, fmt.Errorf("preprocessor '%s': %w", name, err)
	}
	if cfg.Directories, _, err = table.OptionalStringList("directories"); err != nil {
		return nil, fmt.Errorf("preprocessor '%s': %w", name, err)
	}
	if cfg.Macros, _, err = table.OptionalStringList("macros"); err != nil {
		return nil, fmt.Errorf("preprocessor '%s': %w", name, err)
	}

	return cfg, nil
}

// ParsePreprocessors builds the full collection from a [preprocess] section.
// Each immediate key names one preprocessor and must map to a table. The
// result preserves document order. A section with no entries is a manifest
// authoring error, not an empty result.
func ParsePreprocessors(table *document.Table) ([]PreprocessorConfig, error) {
	keys := table.Keys()
	if len(keys) == 0 {
		return nil, &EmptyCollectionError{Entity: "preprocessor", Section: "preprocess"}
	}

	configs := make([]PreprocessorConfig, 0, len(keys))
	for _, key := range keys {
		entry, err := table.Table(key)
		if err != nil {
			return nil, &StructureError{Entity: "preprocessor", Name: key}
		}

		cfg, err := ParsePreprocessor(key, entry)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}

	return configs, nil
}

// Dump writes the preprocessor into table. Absent list fields write nothing
// at all rather than an empty placeholder, so Load reads back an equal entity.
func (p *PreprocessorConfig) Dump(table *document.Table) error {
	if p.Name != "" {
		table.SetString("name", p.Name)
	}
	table.SetStringList("suffixes", p.Suffixes)
	table.SetStringList("directories", p.Directories)
	table.SetStringList("macros", p.Macros)
	return nil
}

// Load is the inverse of Dump. It reads trusted, machine-written documents
// such as build caches, so unlike ParsePreprocessor it performs no schema
// check and tolerates an absent name: format drift in internal files must
// not fail a build.
func (p *PreprocessorConfig) Load(table *document.Table) error {
	name, ok, err := table.OptionalString("name")
	if err != nil {
		return err
	}
	if ok {
		p.Name = name
	}

	if p.Suffixes, _, err = table.OptionalStringList("suffixes"); err != nil {
		return err
	}
	if p.Directories, _, err = table.OptionalStringList("directories"); err != nil {
		return err
	}
	if p.Macros, _, err = table.OptionalStringList("macros"); err != nil {
		return err
	}

	return nil
}

// Equal reports whether other is a PreprocessorConfig structurally equal to
// p. Comparing against any other type yields false, never an error. For each
// list field both sides must agree on absence, and present lists must match
// element by element; lists of different length are unequal.
func (p *PreprocessorConfig) Equal(other interface{}) bool {
	var o *PreprocessorConfig
	switch v := other.(type) {
	case *PreprocessorConfig:
		o = v
	case PreprocessorConfig:
		o = &v
	default:
		return false
	}
	if o == nil {
		return false
	}

	return p.Name == o.Name &&
		stringListsEqual(p.Suffixes, o.Suffixes) &&
		stringListsEqual(p.Directories, o.Directories) &&
		stringListsEqual(p.Macros, o.Macros)
}

func stringListsEqual(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Describe renders a fixed-width listing of the preprocessor. Below
// verbosity 1 it produces nothing. Absent fields are omitted entirely.
func (p *PreprocessorConfig) Describe(verbosity int) string {
	if verbosity < 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Preprocessor\n")
	if p.Name != "" {
		writeField(&b, "name", []string{p.Name})
	}
	writeField(&b, "suffixes", p.Suffixes)
	writeField(&b, "directories", p.Directories)
	writeField(&b, "macros", p.Macros)
	return b.String()
}

// writeField renders one labeled sub-list, continuation lines aligned under
// the first value
func writeField(b *strings.Builder, label string, values []string) {
	if values == nil {
		return
	}
	fmt.Fprintf(b, " - %-14s", label)
	for i, value := range values {
		if i > 0 {
			fmt.Fprintf(b, "%17s", "")
		}
		b.WriteString(value)
		b.WriteString("\n")
	}
	if len(values) == 0 {
		b.WriteString("\n")
	}
}
