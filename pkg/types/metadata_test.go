package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataBag(t *testing.T) {
	m := Metadata{
		"component": map[string]interface{}{"name": "w"},
		"yamlish":   map[interface{}]interface{}{"name": "y", 1: "one"},
		"scalar":    "components/w",
		"list":      []interface{}{"a"},
	}

	tests := []struct {
		name   string
		key    string
		wantOK bool
	}{
		{"string keyed map", "component", true},
		{"interface keyed map", "yamlish", true},
		{"scalar is not a bag", "scalar", false},
		{"list is not a bag", "list", false},
		{"missing key", "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, ok := m.Bag(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, bag)
			}
		})
	}

	yamlish, _ := m.Bag("yamlish")
	assert.Equal(t, "one", yamlish["1"])
}

func TestMetadataNil(t *testing.T) {
	var m Metadata

	assert.False(t, m.Has("x"))
	_, ok := m.Bag("x")
	assert.False(t, ok)
	_, ok = m.String("x")
	assert.False(t, ok)
	assert.Nil(t, m.Strings("x"))
	assert.Empty(t, m.Keys())
}

func TestMetadataStrings(t *testing.T) {
	m := Metadata{
		"single": "main.js",
		"typed":  []string{"a.js", "b.js"},
		"mixed":  []interface{}{"a.css", 3, "b.css"},
		"number": 7,
	}

	assert.Equal(t, []string{"main.js"}, m.Strings("single"))
	assert.Equal(t, []string{"a.js", "b.js"}, m.Strings("typed"))
	assert.Equal(t, []string{"a.css", "b.css"}, m.Strings("mixed"))
	assert.Nil(t, m.Strings("number"))
	assert.Equal(t, []string{"mixed", "number", "single", "typed"}, m.Keys())
}
