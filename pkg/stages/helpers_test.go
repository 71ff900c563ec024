package stages

import (
	"testing"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/pipeline"
	"github.com/arthur-debert/compinst/pkg/resolver"
	"github.com/arthur-debert/compinst/pkg/testutil"
	"github.com/arthur-debert/compinst/pkg/types"
)

const projectDir = "/project"

type env struct {
	host *host.Host
	ctx  *pipeline.Context
	io   *testutil.BufferIO
	fs   types.FS
}

// newEnv builds a host whose packages are already extracted under
// /project/vendor/<prettyName>
func newEnv(t *testing.T, rootExtra types.Metadata, values map[string]interface{}, packages ...*types.Package) *env {
	t.Helper()
	if rootExtra == nil {
		rootExtra = types.Metadata{}
	}
	io := testutil.NewBufferIO()
	fs := testutil.NewTestFS()
	root := &types.RootPackage{
		Package: types.Package{PrettyName: "acme/site", Type: "project", Extra: rootExtra},
		Dir:     projectDir,
	}
	h := host.New(host.Options{
		Root:     root,
		Packages: packages,
		Config:   testutil.NewConfig(t, values),
		FS:       fs,
		IO:       io,
	})
	cfg := config.Resolve(h.Config, root.Extra, "/tmp/compinst")
	return &env{
		host: h,
		ctx:  &pipeline.Context{Host: h, Config: cfg, Resolver: resolver.New(root, cfg)},
		io:   io,
		fs:   fs,
	}
}

// extract writes files into pkg's install path
func (e *env) extract(t *testing.T, pkg *types.Package, files map[string]string) {
	t.Helper()
	dir := e.host.Installation.InstallPath(pkg)
	for rel, content := range files {
		testutil.WriteFileT(t, e.fs, dir+"/"+rel, content)
	}
}

func componentPackage(prettyName string, bag map[string]interface{}) *types.Package {
	pkg := &types.Package{PrettyName: prettyName, Type: types.ComponentType, Extra: types.Metadata{}}
	if bag != nil {
		pkg.Extra[types.ComponentKey] = bag
	}
	return pkg
}
