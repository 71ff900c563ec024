package installer

import (
	"testing"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/testutil"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStage struct {
	initErr error
	ran     *[]string
	id      string
}

func (s *fakeStage) Init() error {
	return s.initErr
}

func (s *fakeStage) Process() error {
	*s.ran = append(*s.ran, s.id)
	return nil
}

// fakeStages registers a stage per id; ids in failing fail Init
func fakeStages(ran *[]string, ids []string, failing ...string) *pipeline.Registry {
	reg := pipeline.NewRegistry()
	for _, id := range ids {
		id := id
		var initErr error
		for _, f := range failing {
			if f == id {
				initErr = errors.New(errors.ErrToolMissing, id+" unavailable")
			}
		}
		reg.MustRegister(id, func(*pipeline.Context, types.IO, types.Metadata) types.Stage {
			return &fakeStage{initErr: initErr, ran: ran, id: id}
		})
	}
	return reg
}

var allStages = []string{pipeline.StageCopy, pipeline.StageRequireJS, pipeline.StageRequireCSS, pipeline.StageBuildJS}

func TestPlan(t *testing.T) {
	f := newFixture(t, nil, map[string]interface{}{"component-full-build": true}, nil)

	plan, explicit := f.installer.Plan()
	assert.False(t, explicit)
	assert.Len(t, plan, 4)
}

func TestInstallAllRunsPipelineAndCleansUp(t *testing.T) {
	var ran []string
	pkg := widgets()
	f := newFixture(t, nil, nil, fakeStages(&ran, allStages), pkg)
	testutil.WriteFileT(t, f.fs, "/downloads/widgets/widgets.js", "js")

	require.NoError(t, f.host.InstallAll())

	assert.Equal(t, []string{pipeline.StageCopy}, ran)
	assert.Equal(t, []string{pipeline.Banner}, f.io.Infos())
	testutil.AssertNotExists(t, f.fs, tmpDir)
	require.NotNil(t, f.installer.LastResult)
	assert.False(t, f.installer.LastResult.Halted)
}

func TestProcessKeepsTmpWhenNotDeleting(t *testing.T) {
	var ran []string
	f := newFixture(t, nil, map[string]interface{}{"component-remove-tmp": false}, fakeStages(&ran, allStages))
	testutil.WriteFileT(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "js")

	_, err := f.installer.Process(f.io)
	require.NoError(t, err)

	testutil.AssertFileContent(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "js")
}

func TestProcessNeverRemovesBaseVendorDir(t *testing.T) {
	var ran []string
	f := newFixture(t, nil, map[string]interface{}{"component-use-base-vendor-dir": true}, fakeStages(&ran, allStages))
	testutil.WriteFileT(t, f.fs, "/project/vendor/acme/lib/lib.php", "php")

	_, err := f.installer.Process(f.io)
	require.NoError(t, err)

	testutil.AssertFileContent(t, f.fs, "/project/vendor/acme/lib/lib.php", "php")
}

func TestProcessHaltKeepsTmp(t *testing.T) {
	var ran []string
	f := newFixture(t, nil, map[string]interface{}{
		"component-processes": []interface{}{"build-js", "copy"},
	}, fakeStages(&ran, allStages, pipeline.StageBuildJS))
	testutil.WriteFileT(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "js")

	result, err := f.installer.Process(f.io)
	require.NoError(t, err)

	assert.True(t, result.Halted)
	assert.Empty(t, ran)
	assert.Len(t, f.io.Warnings(), 1)
	testutil.AssertFileContent(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "js")
}

func TestProcessExplicitEmptyPlan(t *testing.T) {
	var ran []string
	f := newFixture(t, nil, map[string]interface{}{
		"component-processes":  []interface{}{},
		"component-full-build": true,
	}, fakeStages(&ran, allStages))

	result, err := f.installer.Process(f.io)
	require.NoError(t, err)

	assert.Empty(t, result.Runs)
	assert.Empty(t, ran)
	assert.Empty(t, f.io.Warnings())
}

func TestProcessFullyBuiltOrder(t *testing.T) {
	var ran []string
	f := newFixture(t, nil, map[string]interface{}{"component-full-build": true}, fakeStages(&ran, allStages))

	_, err := f.installer.Process(f.io)
	require.NoError(t, err)

	assert.Equal(t, allStages, ran)
}

func TestInstallAllWithBuiltinStages(t *testing.T) {
	pkg := &types.Package{
		PrettyName: "acme/widgets",
		Type:       types.ComponentType,
		Source:     "/downloads/widgets",
		Extra:      types.Metadata{"component": map[string]interface{}{"scripts": []interface{}{"widgets.js"}}},
	}
	f := newFixture(t, nil, nil, nil, pkg)
	testutil.WriteFileT(t, f.fs, "/downloads/widgets/widgets.js", "js")
	testutil.WriteFileT(t, f.fs, "/downloads/widgets/docs/index.html", "docs")

	require.NoError(t, f.host.InstallAll())

	testutil.AssertFileContent(t, f.fs, "/project/components/widgets/widgets.js", "js")
	testutil.AssertNotExists(t, f.fs, "/project/components/widgets/docs")
	testutil.AssertNotExists(t, f.fs, tmpDir)
}

func TestRemoveThroughHost(t *testing.T) {
	pkg := widgets()
	f := newFixture(t, nil, nil, nil, pkg)
	testutil.WriteFileT(t, f.fs, "/downloads/widgets/widgets.js", "js")
	require.NoError(t, f.host.InstallAll())
	testutil.AssertFileContent(t, f.fs, "/project/components/widgets/widgets.js", "js")

	require.NoError(t, f.host.Remove("acme/widgets"))

	testutil.AssertNotExists(t, f.fs, "/project/components/widgets")
}
