package stages

import (
	"testing"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/testutil"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStage(t *testing.T, stage types.Stage) error {
	t.Helper()
	require.NoError(t, stage.Init())
	return stage.Process()
}

func TestCopyDeclaredAssets(t *testing.T) {
	widgets := componentPackage("acme/widgets", map[string]interface{}{
		"scripts": []interface{}{"widgets.js"},
		"styles":  []interface{}{"css/*.css"},
		"files":   []interface{}{"img"},
	})
	e := newEnv(t, nil, nil, widgets)
	e.extract(t, widgets, map[string]string{
		"widgets.js":    "js",
		"css/a.css":     "a",
		"css/b.css":     "b",
		"css/notes.txt": "skip",
		"img/logo.png":  "png",
		"img/sub/x.png": "x",
		"README.md":     "skip",
	})

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))

	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/widgets.js", "js")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/css/a.css", "a")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/css/b.css", "b")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/img/logo.png", "png")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/img/sub/x.png", "x")
	testutil.AssertNotExists(t, e.fs, "/project/components/widgets/css/notes.txt")
	testutil.AssertNotExists(t, e.fs, "/project/components/widgets/README.md")
}

func TestCopyWholePackage(t *testing.T) {
	widgets := componentPackage("acme/widgets", nil)
	e := newEnv(t, nil, nil, widgets)
	e.extract(t, widgets, map[string]string{
		"widgets.js":  "js",
		"lib/deep.js": "deep",
	})

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))

	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/widgets.js", "js")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/lib/deep.js", "deep")
}

func TestCopyHonoursResolvedName(t *testing.T) {
	widgets := componentPackage("acme/widgets", map[string]interface{}{"name": "widget-lib"})
	e := newEnv(t, types.Metadata{
		"component": map[string]interface{}{"acme/widgets": map[string]interface{}{"name": "w"}},
	}, nil, widgets)
	e.extract(t, widgets, map[string]string{"widgets.js": "js"})

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))

	testutil.AssertFileContent(t, e.fs, "/project/components/w/widgets.js", "js")
	testutil.AssertNotExists(t, e.fs, "/project/components/widget-lib")
}

func TestCopyUsesWebDir(t *testing.T) {
	widgets := componentPackage("acme/widgets", nil)
	e := newEnv(t, types.Metadata{"symfony-web-dir": "web"}, map[string]interface{}{"component-dir": "public/js"}, widgets)
	e.extract(t, widgets, map[string]string{"widgets.js": "js"})

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))

	testutil.AssertFileContent(t, e.fs, "/project/web/components/widgets/widgets.js", "js")
}

func TestCopySkipsMissingSource(t *testing.T) {
	widgets := componentPackage("acme/widgets", nil)
	e := newEnv(t, nil, nil, widgets)

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))
	assert.Empty(t, e.io.Warnings())
	testutil.AssertNotExists(t, e.fs, "/project/components/widgets")
}

func TestCopyRootComponent(t *testing.T) {
	e := newEnv(t, types.Metadata{
		"component": map[string]interface{}{"scripts": []interface{}{"assets/*.js"}},
	}, nil)
	testutil.WriteFileT(t, e.fs, "/project/assets/app.js", "app")

	require.NoError(t, runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{})))

	testutil.AssertFileContent(t, e.fs, "/project/components/site/assets/app.js", "app")
}

func TestCopyRejectsPatternsOutsidePackage(t *testing.T) {
	evil := componentPackage("evil/pkg", map[string]interface{}{
		"scripts": []interface{}{"../../../secret.txt", "a.js"},
	})
	widgets := componentPackage("acme/widgets", nil)
	e := newEnv(t, nil, nil, evil, widgets)
	e.extract(t, evil, map[string]string{"a.js": "a"})
	e.extract(t, widgets, map[string]string{"widgets.js": "js"})
	testutil.WriteFileT(t, e.fs, "/project/secret.txt", "secret")

	err := runStage(t, NewCopyStage(e.ctx, e.io, types.Metadata{}))

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
	require.Len(t, e.io.Warnings(), 1)
	assert.Contains(t, e.io.Warnings()[0], "evil/pkg")
	testutil.AssertNotExists(t, e.fs, "/secret.txt")
	testutil.AssertNotExists(t, e.fs, "/project/components/secret.txt")
	testutil.AssertFileContent(t, e.fs, "/project/components/widgets/widgets.js", "js")
}

func TestEscapes(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"a.js", false},
		{"css/a.css", false},
		{"..a.js", false},
		{"..", true},
		{"../a.js", true},
		{"../../x", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapes(tt.rel), tt.rel)
	}
}
