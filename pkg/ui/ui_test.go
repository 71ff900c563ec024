package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"Terminal", FormatTerminal, false},
		{"plain", FormatText, false},
		{"xml", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleText(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, FormatAuto)

	c.Write("plain")
	c.Info("Compiling component files")
	c.Warning("Stage 'x' not found, skipping it")

	assert.Equal(t, FormatText, c.Format())
	assert.Equal(t,
		"plain\nCompiling component files\nwarning: Stage 'x' not found, skipping it\n",
		buf.String())
}

func TestConsoleTerminal(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, FormatTerminal)

	c.Warning("careful")

	assert.Contains(t, buf.String(), "careful")
	assert.NotContains(t, buf.String(), WarningPrefix)
}

func TestConsoleImplementsIO(t *testing.T) {
	var _ types.IO = NewConsole(&bytes.Buffer{}, FormatText)
}

func TestRenderPlan(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPlan(&buf, []PlanRow{
		{Spec: types.StageSpec{ID: "copy"}, Status: "registered"},
		{Spec: types.StageSpec{ID: "require-js", Options: types.Metadata{"baseUrl": "assets"}}, Status: "registered"},
		{Spec: types.StageSpec{ID: "minify"}, Status: "missing"},
	}, FormatText)
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"Stage", "copy", "require-js", "baseUrl=assets", "minify", "missing"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "copy"), strings.Index(out, "minify"))
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPlan(&buf, nil, FormatText))
	assert.Equal(t, "No stages.\n", buf.String())
}
