// Package document provides the hierarchical document tree that manifest
// parsing operates on. A Table is an ordered TOML table node: unlike a plain
// Go map it remembers the order in which keys appeared in the source
// document, which is what manifest sections rely on when they enumerate
// their children.
package document

import (
	"fmt"
)

// TypeError reports a key whose value does not have the expected type.
type TypeError struct {
	Key  string
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("key '%s' must be a %s, found %s", e.Key, e.Want, e.Got)
}

// Table is an ordered table node in a parsed document.
// Values are one of: string, int64, float64, bool, []interface{}, *Table.
type Table struct {
	keys   []string
	values map[string]interface{}
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		keys:   make([]string, 0),
		values: make(map[string]interface{}),
	}
}

// Keys returns the immediate keys of the table in document order
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of immediate keys
func (t *Table) Len() int {
	return len(t.keys)
}

// Has reports whether the table contains key
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Get returns the raw value stored under key
func (t *Table) Get(key string) (interface{}, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set stores value under key, appending the key if it is new
func (t *Table) Set(key string, value interface{}) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Delete removes key from the table if present
func (t *Table) Delete(key string) {
	if _, ok := t.values[key]; !ok {
		return
	}
	delete(t.values, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Table returns the child table stored under key.
// A present value of any other type is a TypeError.
func (t *Table) Table(key string) (*Table, error) {
	v, ok := t.values[key]
	if !ok {
		return nil, &TypeError{Key: key, Want: "table", Got: "nothing"}
	}
	child, ok := v.(*Table)
	if !ok {
		return nil, &TypeError{Key: key, Want: "table", Got: typeName(v)}
	}
	return child, nil
}

// OptionalString reads key as a string scalar.
// An absent key yields ("", false, nil); a present non-string is a TypeError.
func (t *Table) OptionalString(key string) (string, bool, error) {
	v, ok := t.values[key]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &TypeError{Key: key, Want: "string", Got: typeName(v)}
	}
	return s, true, nil
}

// OptionalStringList reads key as a list of strings.
// An absent key yields (nil, false, nil). A present empty array yields a
// non-nil empty slice, so callers can tell "no key" apart from "empty list".
// A present value that is not an array of strings is a TypeError.
func (t *Table) OptionalStringList(key string) ([]string, bool, error) {
	v, ok := t.values[key]
	if !ok {
		return nil, false, nil
	}
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false, &TypeError{Key: key, Want: "list of strings", Got: typeName(v)}
	}
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, false, &TypeError{Key: key, Want: "list of strings", Got: "list containing " + typeName(elem)}
		}
		out = append(out, s)
	}
	return out, true, nil
}

// SetString writes a string scalar under key
func (t *Table) SetString(key, value string) {
	t.Set(key, value)
}

// SetStringList writes values as a string array under key.
// A nil slice omits the key entirely, removing any previous value; a non-nil
// empty slice writes an empty array.
func (t *Table) SetStringList(key string, values []string) {
	if values == nil {
		t.Delete(key)
		return
	}
	arr := make([]interface{}, len(values))
	for i, s := range values {
		arr[i] = s
	}
	t.Set(key, arr)
}

// ToMap converts the table tree to plain nested maps, dropping key order.
// Used when handing the document to encoders that work on Go values.
func (t *Table) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(t.keys))
	for _, key := range t.keys {
		out[key] = toPlain(t.values[key])
	}
	return out
}

func toPlain(v interface{}) interface{} {
	switch val := v.(type) {
	case *Table:
		return val.ToMap()
	case []interface{}:
		arr := make([]interface{}, len(val))
		for i, elem := range val {
			arr[i] = toPlain(elem)
		}
		return arr
	default:
		return v
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *Table:
		return "table"
	case []interface{}:
		return "list"
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
