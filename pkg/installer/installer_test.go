package installer

import (
	"testing"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/filesystem"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/testutil"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tmpDir = "/tmp/compinst"

type fixture struct {
	host      *host.Host
	installer *Installer
	io        *testutil.BufferIO
	fs        types.FS
}

func newFixture(t *testing.T, rootExtra types.Metadata, values map[string]interface{}, stages *pipeline.Registry, packages ...*types.Package) *fixture {
	t.Helper()
	return newFixtureFS(t, testutil.NewTestFS(), rootExtra, values, stages, packages...)
}

func newFixtureFS(t *testing.T, fs types.FS, rootExtra types.Metadata, values map[string]interface{}, stages *pipeline.Registry, packages ...*types.Package) *fixture {
	t.Helper()
	if rootExtra == nil {
		rootExtra = types.Metadata{}
	}
	io := testutil.NewBufferIO()
	h := host.New(host.Options{
		Root: &types.RootPackage{
			Package: types.Package{PrettyName: "acme/site", Type: "project", Extra: rootExtra},
			Dir:     "/project",
		},
		Packages: packages,
		Config:   testutil.NewConfig(t, values),
		FS:       fs,
		IO:       io,
	})
	return &fixture{
		host:      h,
		installer: New(h, Options{TmpDir: tmpDir, Stages: stages}),
		io:        io,
		fs:        fs,
	}
}

func widgets() *types.Package {
	return &types.Package{PrettyName: "acme/widgets", Type: types.ComponentType, Source: "/downloads/widgets"}
}

func TestSupports(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	assert.True(t, f.installer.Supports(types.ComponentType))
	assert.False(t, f.installer.Supports("library"))
}

func TestSupportsMergesHandler(t *testing.T) {
	f := newFixture(t, nil, nil, nil)
	f.host.Events.RegisterHandler(host.EventPostAutoloadDump, "cache-warmup", func(*host.Event) error { return nil })

	f.installer.Supports(types.ComponentType)
	f.installer.Supports("library")

	assert.Equal(t,
		[]string{HandlerName, "cache-warmup"},
		f.host.Events.Handlers(host.EventPostAutoloadDump))
}

func TestInstallationManagerRoutesComponents(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	assert.Same(t, f.installer, f.host.Installation.GetInstaller(types.ComponentType))
	assert.Same(t, f.host.Library, f.host.Installation.GetInstaller("library"))
}

func TestInitializeVendorDir(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	require.NoError(t, f.installer.InitializeVendorDir())

	for _, dir := range []string{"/project/components", tmpDir} {
		exists, err := filesystem.Exists(f.fs, dir)
		require.NoError(t, err)
		assert.True(t, exists, dir)
	}
	assert.Equal(t, tmpDir+"/acme/widgets", f.installer.InstallPath(widgets()))
}

func TestInitializeVendorDirUsesBaseVendorDir(t *testing.T) {
	f := newFixture(t, nil, map[string]interface{}{
		"vendor-dir":                    "lib/",
		"component-use-base-vendor-dir": true,
	}, nil)

	assert.Equal(t, "lib", f.installer.VendorTmpDir())
	assert.Equal(t, "/project/lib/acme/widgets", f.installer.InstallPath(widgets()))
}

func TestInstallCodeClearsStaleComponent(t *testing.T) {
	pkg := widgets()
	f := newFixture(t, nil, nil, nil, pkg)
	testutil.WriteFileT(t, f.fs, "/downloads/widgets/widgets.js", "v2")
	testutil.WriteFileT(t, f.fs, "/project/components/widgets/stale.js", "v1")

	require.NoError(t, f.installer.Install(pkg))

	testutil.AssertNotExists(t, f.fs, "/project/components/widgets")
	testutil.AssertFileContent(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "v2")
}

func TestRemoveCodeClearsBoth(t *testing.T) {
	pkg := widgets()
	f := newFixture(t, nil, nil, nil, pkg)
	testutil.WriteFileT(t, f.fs, "/project/components/widgets/widgets.js", "js")
	testutil.WriteFileT(t, f.fs, tmpDir+"/acme/widgets/widgets.js", "js")

	require.NoError(t, f.installer.Uninstall(pkg))

	testutil.AssertNotExists(t, f.fs, "/project/components/widgets")
	testutil.AssertNotExists(t, f.fs, tmpDir+"/acme/widgets")
}

func TestRemoveComponentMissingIsNoop(t *testing.T) {
	f := newFixture(t, nil, nil, nil)

	assert.NoError(t, f.installer.RemoveComponent(widgets()))
}

func TestRemoveComponentUsesOverride(t *testing.T) {
	f := newFixture(t, types.Metadata{
		"component": map[string]interface{}{"acme/widgets": map[string]interface{}{"name": "w"}},
	}, nil, nil)
	testutil.WriteFileT(t, f.fs, "/project/components/w/w.js", "js")
	testutil.WriteFileT(t, f.fs, "/project/components/widgets/keep.js", "js")

	require.NoError(t, f.installer.RemoveComponent(widgets()))

	testutil.AssertNotExists(t, f.fs, "/project/components/w")
	testutil.AssertFileContent(t, f.fs, "/project/components/widgets/keep.js", "js")
}

func TestRemoveComponentFailurePropagates(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/project/components/widgets/widgets.js", []byte("js"), 0644))
	f := newFixtureFS(t, filesystem.NewAferoFS(afero.NewReadOnlyFs(mem)), nil, nil, nil)

	err := f.installer.RemoveComponent(widgets())

	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRemove))
}

func TestInstallIgnoresUnsafeDeclaredNames(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../..", "a/b"} {
		t.Run(name, func(t *testing.T) {
			pkg := &types.Package{
				PrettyName: "evil/pkg",
				Type:       types.ComponentType,
				Source:     "/downloads/evil",
				Extra:      types.Metadata{"component": map[string]interface{}{"name": name}},
			}
			f := newFixture(t, nil, nil, nil, pkg)
			testutil.WriteFileT(t, f.fs, "/downloads/evil/evil.js", "js")
			testutil.WriteFileT(t, f.fs, "/project/components/widgets/widgets.js", "keep")
			testutil.WriteFileT(t, f.fs, "/project/src/app.js", "keep")

			require.NoError(t, f.installer.Install(pkg))
			require.NoError(t, f.installer.Uninstall(pkg))

			testutil.AssertFileContent(t, f.fs, "/project/components/widgets/widgets.js", "keep")
			testutil.AssertFileContent(t, f.fs, "/project/src/app.js", "keep")
		})
	}
}

func TestRemoveComponentRefusesEmptyDerivedName(t *testing.T) {
	f := newFixture(t, nil, nil, nil)
	testutil.WriteFileT(t, f.fs, "/project/components/widgets/widgets.js", "keep")

	err := f.installer.RemoveComponent(&types.Package{PrettyName: "acme/", Type: types.ComponentType})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	testutil.AssertFileContent(t, f.fs, "/project/components/widgets/widgets.js", "keep")
}
