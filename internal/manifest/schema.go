package manifest

import (
	"github.com/fortbuild/fortbuild/internal/document"
)

// checkAllowedKeys verifies that every immediate key of table is in the
// allowed set. The first unknown key fails the check; no further keys are
// inspected. entity and name identify the entry in the error message.
func checkAllowedKeys(entity, name string, table *document.Table, allowed []string) error {
	for _, key := range table.Keys() {
		if !contains(allowed, key) {
			return &SchemaError{Entity: entity, Name: name, Key: key}
		}
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, elem := range list {
		if elem == value {
			return true
		}
	}
	return false
}
