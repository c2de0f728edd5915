// Package manifest implements parsing and validation of fortbuild.toml
// project manifests. Parsing is strict: unrecognized keys are rejected with
// an error naming the key and the entry it appeared in, so authoring typos
// surface immediately instead of being silently ignored.
package manifest

import (
	"fmt"
	"os"

	"github.com/fortbuild/fortbuild/internal/document"
)

// PackageConfig contains the project metadata from the [package] section
type PackageConfig struct {
	Name    string
	Version string
}

// packageKeys is the full set of keys a [package] section may contain
var packageKeys = []string{"name", "version"}

// manifestKeys is the full set of top-level sections a manifest may contain
var manifestKeys = []string{"package", "preprocess"}

// Manifest is the parsed project manifest
type Manifest struct {
	Package       PackageConfig
	Preprocessors []PreprocessorConfig
}

// LoadFromFile loads a manifest from a fortbuild.toml file
func LoadFromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return LoadFromString(string(data))
}

// LoadFromString loads a manifest from TOML content
func LoadFromString(content string) (*Manifest, error) {
	root, err := document.Parse([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return fromDocument(root)
}

func fromDocument(root *document.Table) (*Manifest, error) {
	if err := checkAllowedKeys("manifest", "root", root, manifestKeys); err != nil {
		return nil, err
	}

	m := &Manifest{}

	pkg, err := root.Table("package")
	if err != nil {
		return nil, fmt.Errorf("manifest must contain a [package] section: %w", err)
	}
	if err := checkAllowedKeys("package", "package", pkg, packageKeys); err != nil {
		return nil, err
	}

	name, ok, err := pkg.OptionalString("name")
	if err != nil {
		return nil, err
	}
	if !ok || name == "" {
		return nil, fmt.Errorf("manifest [package] section must set a name")
	}
	m.Package.Name = name

	if m.Package.Version, _, err = pkg.OptionalString("version"); err != nil {
		return nil, err
	}

	// [preprocess] is optional; when present it must declare at least one entry
	if root.Has("preprocess") {
		section, err := root.Table("preprocess")
		if err != nil {
			return nil, fmt.Errorf("invalid [preprocess] section: %w", err)
		}
		if m.Preprocessors, err = ParsePreprocessors(section); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Describe renders a listing of the manifest at the given verbosity
func (m *Manifest) Describe(verbosity int) string {
	if verbosity < 1 {
		return ""
	}
	out := fmt.Sprintf("Package %s", m.Package.Name)
	if m.Package.Version != "" {
		out += " " + m.Package.Version
	}
	out += "\n"
	for i := range m.Preprocessors {
		out += m.Preprocessors[i].Describe(verbosity)
	}
	return out
}
