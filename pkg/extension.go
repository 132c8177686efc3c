// Package pkg wires the spatial extension together: configuration,
// logging and registration of the ST_* functions into a host registry.
package pkg

import (
	"github.com/kasuganosora/spatialexec/pkg/api"
	"github.com/kasuganosora/spatialexec/pkg/arena"
	"github.com/kasuganosora/spatialexec/pkg/builtin"
	"github.com/kasuganosora/spatialexec/pkg/config"
	"github.com/kasuganosora/spatialexec/pkg/geom"
)

// Extension is the entry point a host embeds. It owns the extension's
// configuration and logger and installs the spatial functions into a
// function registry chosen by the host.
type Extension struct {
	cfg      *config.Config
	logger   api.Logger
	registry *builtin.FunctionRegistry
}

// NewExtension creates an extension with its own registry. A nil config
// selects defaults.
func NewExtension(cfg *config.Config) *Extension {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Extension{
		cfg:      cfg,
		logger:   api.NewDefaultLogger(api.ParseLogLevel(cfg.Log.Level)),
		registry: builtin.NewFunctionRegistry(),
	}
}

// SetLogger replaces the extension logger.
func (e *Extension) SetLogger(logger api.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Registry returns the registry the extension installs into.
func (e *Extension) Registry() *builtin.FunctionRegistry {
	return e.registry
}

// UseRegistry points the extension at a host-owned registry.
func (e *Extension) UseRegistry(r *builtin.FunctionRegistry) {
	if r != nil {
		e.registry = r
	}
}

// Register installs the configured function groups.
func (e *Extension) Register() {
	builtin.RegisterSpatialFunctions(e.registry)
	if e.cfg.Functions.Geodesic {
		builtin.RegisterGeodesicFunctions(e.registry)
	}
	if e.cfg.Functions.Simplify {
		builtin.RegisterSimplifyFunctions(e.registry)
	}
	e.logger.Info("spatial extension registered %d functions",
		len(e.registry.ListByCategory(builtin.CategorySpatial)))
}

// NewReader returns a WKT reader with a fresh arena sized per config.
// The reader serves one parse at a time; run one per worker.
func (e *Extension) NewReader() *geom.WKTReader {
	return geom.NewWKTReader(arena.New(e.cfg.Arena.InitialBlockSize))
}
