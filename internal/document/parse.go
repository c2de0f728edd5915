package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Parse parses TOML text into an ordered Table tree.
//
// toml.Unmarshal decodes tables into Go maps, which forget the order keys
// appeared in, so this walks the low-level expression stream instead and
// builds the tree one expression at a time.
func Parse(data []byte) (*Table, error) {
	root := NewTable()
	current := root

	var parser unstable.Parser
	parser.Reset(data)

	for parser.NextExpression() {
		expr := parser.Expression()

		switch expr.Kind {
		case unstable.KeyValue:
			if err := setKeyValue(current, expr); err != nil {
				return nil, err
			}

		case unstable.Table:
			target, err := descend(root, keyParts(expr))
			if err != nil {
				return nil, err
			}
			current = target

		case unstable.ArrayTable:
			target, err := appendArrayTable(root, keyParts(expr))
			if err != nil {
				return nil, err
			}
			current = target
		}
	}

	if err := parser.Error(); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return root, nil
}

// Marshal serializes the table tree back to TOML text. Key order follows the
// encoder, not the document: this path writes machine-read documents where
// order carries no meaning.
func Marshal(t *Table) ([]byte, error) {
	data, err := toml.Marshal(t.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}

// keyParts collects the (possibly dotted) key of a KeyValue, Table or
// ArrayTable expression
func keyParts(expr *unstable.Node) []string {
	parts := make([]string, 0, 1)
	it := expr.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// descend walks parts from root, creating intermediate tables as needed,
// and returns the table the final part names
func descend(root *Table, parts []string) (*Table, error) {
	current := root
	for i, part := range parts {
		existing, ok := current.Get(part)
		if !ok {
			child := NewTable()
			current.Set(part, child)
			current = child
			continue
		}
		switch v := existing.(type) {
		case *Table:
			current = v
		case []interface{}:
			// Dotted reference into an array of tables targets its last element
			if len(v) == 0 {
				return nil, fmt.Errorf("key '%s' refers to an empty table array", strings.Join(parts[:i+1], "."))
			}
			last, ok := v[len(v)-1].(*Table)
			if !ok {
				return nil, fmt.Errorf("key '%s' is not a table", strings.Join(parts[:i+1], "."))
			}
			current = last
		default:
			return nil, fmt.Errorf("key '%s' is not a table", strings.Join(parts[:i+1], "."))
		}
	}
	return current, nil
}

// appendArrayTable appends a fresh table to the array of tables parts names
func appendArrayTable(root *Table, parts []string) (*Table, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("table array header has no key")
	}
	parent, err := descend(root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}

	last := parts[len(parts)-1]
	entry := NewTable()

	existing, ok := parent.Get(last)
	if !ok {
		parent.Set(last, []interface{}{entry})
		return entry, nil
	}
	arr, ok := existing.([]interface{})
	if !ok {
		return nil, fmt.Errorf("key '%s' is not a table array", strings.Join(parts, "."))
	}
	parent.Set(last, append(arr, entry))
	return entry, nil
}

func setKeyValue(table *Table, expr *unstable.Node) error {
	parts := keyParts(expr)
	if len(parts) == 0 {
		return fmt.Errorf("key-value expression has no key")
	}

	target, err := descend(table, parts[:len(parts)-1])
	if err != nil {
		return err
	}

	value, err := nodeValue(expr.Value())
	if err != nil {
		return err
	}

	last := parts[len(parts)-1]
	if target.Has(last) {
		return fmt.Errorf("key '%s' defined more than once", strings.Join(parts, "."))
	}
	target.Set(last, value)
	return nil
}

// nodeValue converts a value node into the Go representation Table stores
func nodeValue(node *unstable.Node) (interface{}, error) {
	switch node.Kind {
	case unstable.String:
		return string(node.Data), nil

	case unstable.Bool:
		return len(node.Data) > 0 && node.Data[0] == 't', nil

	case unstable.Integer:
		text := strings.ReplaceAll(string(node.Data), "_", "")
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s': %w", string(node.Data), err)
		}
		return n, nil

	case unstable.Float:
		text := strings.ReplaceAll(string(node.Data), "_", "")
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", string(node.Data), err)
		}
		return f, nil

	case unstable.DateTime, unstable.LocalDateTime, unstable.LocalDate, unstable.LocalTime:
		// Dates carry through verbatim; nothing in a manifest interprets them
		return string(node.Data), nil

	case unstable.Array:
		arr := make([]interface{}, 0)
		it := node.Children()
		for it.Next() {
			elem, err := nodeValue(it.Node())
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil

	case unstable.InlineTable:
		inline := NewTable()
		it := node.Children()
		for it.Next() {
			if err := setKeyValue(inline, it.Node()); err != nil {
				return nil, err
			}
		}
		return inline, nil

	default:
		return nil, fmt.Errorf("unsupported value kind %s", node.Kind)
	}
}
