package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		prettyName string
		want       string
	}{
		{"acme/widgets", "widgets"},
		{"widgets", "widgets"},
		{"acme/sub/widgets", "widgets"},
		{"acme/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.prettyName, func(t *testing.T) {
			p := &Package{PrettyName: tt.prettyName}
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestRootPackageOverride(t *testing.T) {
	root := &RootPackage{
		Package: Package{
			PrettyName: "acme/site",
			Extra: Metadata{
				"component": map[string]interface{}{
					"acme/widgets": map[string]interface{}{"name": "w"},
					"acme/scalar":  "ignored",
				},
			},
		},
	}

	bag, ok := root.Override("acme/widgets")
	assert.True(t, ok)
	assert.Equal(t, "w", bag["name"])

	_, ok = root.Override("acme/scalar")
	assert.False(t, ok, "non-bag overrides are ignored")

	_, ok = root.Override("acme/absent")
	assert.False(t, ok)

	var nilRoot *RootPackage
	_, ok = nilRoot.Override("acme/widgets")
	assert.False(t, ok)
}

func TestStageSpecString(t *testing.T) {
	assert.Equal(t, "copy", StageSpec{ID: "copy"}.String())
}
