// Package builtin registers the extension's scalar functions into a
// function registry consumed by the SQL host. The host owns scheduling,
// type coercion and vectorized execution; handlers here are plain
// per-row Go functions.
package builtin

import (
	"fmt"
	"sync"
)

// FunctionType distinguishes scalar from aggregate registrations. This
// extension only ships scalar functions.
type FunctionType int

const (
	FunctionTypeScalar FunctionType = iota
	FunctionTypeAggregate
)

// FunctionCategory groups functions for listing.
type FunctionCategory = string

// FunctionSignature describes one callable shape of a function.
type FunctionSignature struct {
	Name       string
	ReturnType string
	ParamTypes []string
	Variadic   bool
}

// FunctionHandle is the per-row handler invoked by the host.
type FunctionHandle func(args []interface{}) (interface{}, error)

// FunctionInfo is the registration record for one function.
type FunctionInfo struct {
	Name        string
	Type        FunctionType
	Signatures  []FunctionSignature
	Handler     FunctionHandle
	Description string
	Example     string
	Category    FunctionCategory
}

// FunctionRegistry maps function names to registrations.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]*FunctionInfo
}

// NewFunctionRegistry creates an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]*FunctionInfo),
	}
}

// Register adds a function registration. The record must carry a name
// and a handler.
func (r *FunctionRegistry) Register(info *FunctionInfo) error {
	if info == nil {
		return fmt.Errorf("function info cannot be nil")
	}
	if info.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}
	if info.Handler == nil {
		return fmt.Errorf("function handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[info.Name] = info
	return nil
}

// Get looks up a function by name.
func (r *FunctionRegistry) Get(name string) (*FunctionInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, exists := r.functions[name]
	return info, exists
}

// Exists reports whether a function is registered.
func (r *FunctionRegistry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.functions[name]
	return exists
}

// List returns all registrations.
func (r *FunctionRegistry) List() []*FunctionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*FunctionInfo, 0, len(r.functions))
	for _, info := range r.functions {
		list = append(list, info)
	}
	return list
}

// ListByCategory returns all registrations in a category.
func (r *FunctionRegistry) ListByCategory(category FunctionCategory) []*FunctionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*FunctionInfo, 0)
	for _, info := range r.functions {
		if info.Category == category {
			list = append(list, info)
		}
	}
	return list
}

// Unregister removes a function, reporting whether it existed.
func (r *FunctionRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.functions[name]; exists {
		delete(r.functions, name)
		return true
	}
	return false
}

var globalRegistry = NewFunctionRegistry()

// GetGlobalRegistry returns the process-wide registry the host reads.
func GetGlobalRegistry() *FunctionRegistry {
	return globalRegistry
}

// RegisterGlobal registers into the global registry.
func RegisterGlobal(info *FunctionInfo) error {
	return globalRegistry.Register(info)
}

// GetGlobal looks up a function in the global registry.
func GetGlobal(name string) (*FunctionInfo, bool) {
	return globalRegistry.Get(name)
}

// ResetGlobalRegistry resets the global registry to a fresh state. For
// test isolation only; not safe against concurrent registry use.
func ResetGlobalRegistry() {
	globalRegistry = NewFunctionRegistry()
}
