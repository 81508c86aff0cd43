// Package controller holds the registry that binds controller modules to the
// operations that reference them.
//
// The document names a controller module per path (x-controller) and an
// exported handler per operation (operationId). Modules are registered as
// loader functions; a loader runs at most once, on first reference, and every
// operation referencing the module shares the loaded exports. The registry is
// populated and consulted during the single threaded startup pass and must not
// be mutated afterwards.
package controller

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/specbind/specbind/pkg/engine"
	"github.com/specbind/specbind/pkg/log"
)

// Module is the exports of one controller module, keyed by operationId.
type Module map[string]engine.HandlerFunc

// LoaderFunc produces a module's exports. It is invoked at most once per
// registered name.
type LoaderFunc func() (Module, error)

// UnknownModuleError indicates an x-controller reference with no registered
// module.
type UnknownModuleError struct {
	Module string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown controller module %q", e.Module)
}

// MissingOperationHandlerError indicates an operationId with no matching
// export in its controller module. The route must not be registered.
type MissingOperationHandlerError struct {
	Module      string
	OperationID string
}

func (e *MissingOperationHandlerError) Error() string {
	return fmt.Sprintf("controller module %q has no handler for operation %q", e.Module, e.OperationID)
}

// Registry resolves and memoizes controller modules by name.
type Registry struct {
	loaders map[string]LoaderFunc
	cache   map[string]Module
}

func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]LoaderFunc),
		cache:   make(map[string]Module),
	}
}

// RegisterModule registers a lazily loaded module under name. Registering the
// same name twice replaces the previous loader.
func (r *Registry) RegisterModule(name string, load LoaderFunc) {
	r.loaders[name] = load
}

// Register registers an already built module under name.
func (r *Registry) Register(name string, m Module) {
	r.RegisterModule(name, func() (Module, error) { return m, nil })
}

// Resolve returns the handler exported as operationID by the named module,
// loading the module on first reference.
func (r *Registry) Resolve(module, operationID string) (engine.HandlerFunc, error) {
	exports, ok := r.cache[module]
	if !ok {
		load, found := r.loaders[module]
		if !found {
			return nil, &UnknownModuleError{Module: module}
		}

		var err error
		exports, err = load()
		if err != nil {
			return nil, errors.Wrapf(err, "loading controller module %q", module)
		}
		r.cache[module] = exports
		log.Debug().Str("module", module).Int("handlers", len(exports)).Msg("loaded controller module")
	}

	h, ok := exports[operationID]
	if !ok || h == nil {
		return nil, &MissingOperationHandlerError{Module: module, OperationID: operationID}
	}
	return h, nil
}
