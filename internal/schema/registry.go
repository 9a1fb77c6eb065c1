package schema

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Registry accumulates field declarations per type name. Several
// independent sites may contribute to the same name without knowing about
// each other; Lookup resolves them into one schema.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]types.Contribution
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string][]types.Contribution),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterOption adjusts the contribution built by Register.
type RegisterOption func(*types.Contribution)

// Open marks the contribution as accepting undeclared fields.
func Open() RegisterOption {
	return func(c *types.Contribution) { c.Open = true }
}

// Site names the registration site, for diagnostics.
func Site(name string) RegisterOption {
	return func(c *types.Contribution) { c.Site = name }
}

// Extends declares base types whose fields the type inherits.
func Extends(bases ...string) RegisterOption {
	return func(c *types.Contribution) { c.Extends = append(c.Extends, bases...) }
}

// Register appends fields to the schema named typeName, creating it if
// absent. A field whose flags disagree with an earlier declaration of the
// same name fails with ErrSchemaConflict and leaves the registry unchanged.
func (r *Registry) Register(typeName string, fields []types.FieldSpec, opts ...RegisterOption) error {
	c := types.Contribution{Fields: slices.Clone(fields)}
	for _, opt := range opts {
		opt(&c)
	}
	return r.RegisterContribution(typeName, c)
}

// RegisterContribution appends a prebuilt contribution to typeName.
func (r *Registry) RegisterContribution(typeName string, c types.Contribution) error {
	if typeName == "" {
		return fmt.Errorf("%w: empty type name", types.ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := append(slices.Clone(r.entries[typeName]), c)
	if _, err := Merge(typeName, candidate); err != nil {
		r.logger.Debug("rejected contribution",
			zap.String("type", typeName),
			zap.String("site", c.Site),
			zap.Error(err))
		return err
	}
	r.entries[typeName] = candidate

	r.logger.Debug("registered contribution",
		zap.String("type", typeName),
		zap.String("site", c.Site),
		zap.Int("fields", len(c.Fields)),
		zap.Bool("open", c.Open),
		zap.Strings("extends", c.Extends))
	return nil
}

// Lookup returns the effective schema for typeName, including fields
// inherited from its bases. Returns ErrUnknownType if nothing was
// registered under the name or one of its bases, and ErrSchemaConflict if
// inheritance is cyclic or an inherited field disagrees with a local one.
func (r *Registry) Lookup(typeName string) (types.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contributions, err := r.resolve(typeName, make(map[string]bool))
	if err != nil {
		return types.Schema{}, err
	}
	return Merge(typeName, contributions)
}

// Validate looks up typeName and validates record against it.
func (r *Registry) Validate(typeName string, record types.Record) error {
	s, err := r.Lookup(typeName)
	if err != nil {
		return err
	}
	return Validate(record, s)
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve returns the contributions of name preceded by those of its
// bases, depth first. The caller must hold r.mu.
func (r *Registry) resolve(name string, visiting map[string]bool) ([]types.Contribution, error) {
	if visiting[name] {
		return nil, fmt.Errorf("%w: %q inherits from itself", types.ErrSchemaConflict, name)
	}
	own, ok := r.entries[name]
	if !ok {
		return nil, types.UnknownType(name)
	}

	visiting[name] = true
	defer delete(visiting, name)

	var out []types.Contribution
	for _, c := range own {
		for _, base := range c.Extends {
			inherited, err := r.resolve(base, visiting)
			if err != nil {
				return nil, err
			}
			out = append(out, inherited...)
		}
	}
	return append(out, own...), nil
}
