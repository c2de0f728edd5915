package manifest

import "fmt"

// SchemaError reports a key that is not part of an entry's schema.
// These come from user-authored manifests, so the message names both the
// offending key and the entry it appeared in.
type SchemaError struct {
	Entity string // kind of entry, e.g. "preprocessor"
	Name   string // name of the entry the key appeared in
	Key    string // the unrecognized key
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Key '%s' not allowed in %s '%s'.", e.Key, e.Entity, e.Name)
}

// StructureError reports a collection entry whose value is not a table
type StructureError struct {
	Entity string
	Name   string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s %s must be a table entry", capitalized(e.Entity), e.Name)
}

// EmptyCollectionError reports a section that declares no entries at all
type EmptyCollectionError struct {
	Entity  string
	Section string
}

func (e *EmptyCollectionError) Error() string {
	return fmt.Sprintf("no %ss defined in '[%s]' section", e.Entity, e.Section)
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
