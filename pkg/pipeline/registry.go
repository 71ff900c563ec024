package pipeline

import (
	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/host"
	"github.com/arthur-debert/compinst/pkg/registry"
	"github.com/arthur-debert/compinst/pkg/resolver"
	"github.com/arthur-debert/compinst/pkg/types"
)

// Context is the run-wide state every stage is constructed against.
type Context struct {
	Host     *host.Host
	Config   *config.Resolved
	Resolver *resolver.Resolver
}

// Factory constructs a stage. Construction must not fail; anything that can
// go wrong belongs in the stage's Init.
type Factory func(ctx *Context, io types.IO, options types.Metadata) types.Stage

// Registry maps stage identifiers to factories
type Registry struct {
	factories registry.Registry[Factory]
}

// NewRegistry creates an empty stage registry
func NewRegistry() *Registry {
	return &Registry{factories: registry.New[Factory]()}
}

// Register adds a factory under id. Registering an id twice fails.
func (r *Registry) Register(id string, factory Factory) error {
	return r.factories.Register(id, factory)
}

// Replace adds or overwrites the factory under id
func (r *Registry) Replace(id string, factory Factory) error {
	return r.factories.Replace(id, factory)
}

// Lookup returns the factory registered under id
func (r *Registry) Lookup(id string) (Factory, bool) {
	return r.factories.Lookup(id)
}

// IDs returns the registered identifiers in sorted order
func (r *Registry) IDs() []string {
	return r.factories.Names()
}

// MustRegister registers a factory and panics when id is taken
func (r *Registry) MustRegister(id string, factory Factory) {
	registry.MustRegister(r.factories, id, factory)
}
