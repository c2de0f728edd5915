package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesKeyOrder(t *testing.T) {
	toml := `
zeta = "last section wins nothing, order is what matters"

[preprocess.fypp]
suffixes = ["fypp"]

[preprocess.cpp]
suffixes = ["F90"]
`

	root, err := Parse([]byte(toml))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "preprocess"}, root.Keys())

	section, err := root.Table("preprocess")
	require.NoError(t, err)
	assert.Equal(t, []string{"fypp", "cpp"}, section.Keys())
}

func TestParseScalarsAndNesting(t *testing.T) {
	toml := `
title = "demo"
count = 1_000
ratio = 0.5
enabled = true

[owner]
contact.name = "ada"

[server]
ports = [8000, 8001]
limits = { cpu = 4 }
`

	root, err := Parse([]byte(toml))
	require.NoError(t, err)

	title, ok, err := root.OptionalString("title")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "demo", title)

	count, ok := root.Get("count")
	require.True(t, ok)
	assert.Equal(t, int64(1000), count)

	ratio, _ := root.Get("ratio")
	assert.Equal(t, 0.5, ratio)

	enabled, _ := root.Get("enabled")
	assert.Equal(t, true, enabled)

	owner, err := root.Table("owner")
	require.NoError(t, err)
	contact, err := owner.Table("contact")
	require.NoError(t, err)
	name, _, err := contact.OptionalString("name")
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	server, err := root.Table("server")
	require.NoError(t, err)
	ports, ok := server.Get("ports")
	require.True(t, ok)
	assert.Equal(t, []interface{}{int64(8000), int64(8001)}, ports)

	limits, err := server.Table("limits")
	require.NoError(t, err)
	cpu, _ := limits.Get("cpu")
	assert.Equal(t, int64(4), cpu)
}

func TestParseArrayOfTables(t *testing.T) {
	toml := `
[[job]]
name = "a"

[[job]]
name = "b"
`

	root, err := Parse([]byte(toml))
	require.NoError(t, err)

	raw, ok := root.Get("job")
	require.True(t, ok)
	jobs, ok := raw.([]interface{})
	require.True(t, ok)
	require.Len(t, jobs, 2)

	first, ok := jobs[0].(*Table)
	require.True(t, ok)
	name, _, err := first.OptionalString("name")
	require.NoError(t, err)
	assert.Equal(t, "a", name)
}

func TestParseRejectsInvalidInput(t *testing.T) {
	_, err := Parse([]byte(`key = `))
	assert.Error(t, err)

	_, err = Parse([]byte("a = 1\na = 2\n"))
	assert.Error(t, err)
}

func TestOptionalStringList(t *testing.T) {
	toml := `
empty = []
filled = ["x", "y"]
mixed = ["x", 1]
scalar = "x"
`

	root, err := Parse([]byte(toml))
	require.NoError(t, err)

	// Absent key: no value, no error
	values, ok, err := root.OptionalStringList("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, values)

	// Present but empty: distinguishable from absent
	values, ok, err = root.OptionalStringList("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, values)
	assert.Len(t, values, 0)

	values, ok, err = root.OptionalStringList("filled")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, values)

	_, _, err = root.OptionalStringList("mixed")
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "mixed", typeErr.Key)

	_, _, err = root.OptionalStringList("scalar")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "scalar", typeErr.Key)
}

func TestTableAccessor(t *testing.T) {
	root, err := Parse([]byte("cpp = 1\n\n[fypp]\n"))
	require.NoError(t, err)

	_, err = root.Table("cpp")
	var typeErr *TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "table", typeErr.Want)
	assert.Equal(t, "integer", typeErr.Got)

	child, err := root.Table("fypp")
	require.NoError(t, err)
	assert.Equal(t, 0, child.Len())

	_, err = root.Table("missing")
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "nothing", typeErr.Got)
}

func TestSetStringList(t *testing.T) {
	table := NewTable()

	table.SetStringList("suffixes", []string{"F90"})
	values, ok, err := table.OptionalStringList("suffixes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"F90"}, values)

	// Empty but present
	table.SetStringList("macros", []string{})
	values, ok, err = table.OptionalStringList("macros")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, values)
	assert.Len(t, values, 0)

	// nil omits the key, removing the previous value
	table.SetStringList("suffixes", nil)
	assert.False(t, table.Has("suffixes"))
	assert.Equal(t, []string{"macros"}, table.Keys())
}

func TestDeleteKeepsOrder(t *testing.T) {
	table := NewTable()
	table.SetString("a", "1")
	table.SetString("b", "2")
	table.SetString("c", "3")

	table.Delete("b")
	assert.Equal(t, []string{"a", "c"}, table.Keys())

	// Deleting a missing key is a no-op
	table.Delete("b")
	assert.Equal(t, []string{"a", "c"}, table.Keys())
}

func TestMarshalRoundTrip(t *testing.T) {
	inner := NewTable()
	inner.SetString("name", "cpp")
	inner.SetStringList("suffixes", []string{"F90", "f90"})

	root := NewTable()
	root.Set("entry", inner)

	data, err := Marshal(root)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)

	entry, err := back.Table("entry")
	require.NoError(t, err)

	name, _, err := entry.OptionalString("name")
	require.NoError(t, err)
	assert.Equal(t, "cpp", name)

	suffixes, ok, err := entry.OptionalStringList("suffixes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"F90", "f90"}, suffixes)
}
