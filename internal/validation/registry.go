package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownType  = errors.New("unknown parameter type")
	ErrInvalidType  = errors.New("invalid parameter type")
	ErrAbstractType = errors.New("abstract parameter type")
)

// Registry maps type names to descriptors.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewRegistry returns a registry with the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*Type)}
	for _, t := range []*Type{Ty, Text, Tag, Int, Bool} {
		r.types[t.Name] = t
	}
	return r
}

// Define adds a new type below parent. rule is applied after the parent's
// validation.
func (r *Registry) Define(name string, parent *Type, rule Rule) (*Type, error) {
	if name == "" || strings.HasPrefix(name, ChoicePrefix) {
		return nil, fmt.Errorf("%w: reserved name %q", ErrInvalidType, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[name]; ok {
		return nil, fmt.Errorf("%w: %s is already defined", ErrInvalidType, name)
	}
	t := NewType(name, parent, rule)
	r.types[name] = t
	return t, nil
}

// Lookup resolves a type name. Choice types are built on the fly.
func (r *Registry) Lookup(name string) (*Type, error) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(name, ChoicePrefix); ok {
		return NewChoice(strings.Split(rest, ","))
	}
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownType, name, strings.Join(r.Names(), ", "))
	}
	return t, nil
}

// LookupConcrete is Lookup that also rejects abstract types.
func (r *Registry) LookupConcrete(name string) (*Type, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if t.IsAbstract() {
		return nil, fmt.Errorf("%w: %s", ErrAbstractType, t.Name)
	}
	return t, nil
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for n := range r.types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// Lookup resolves name in the default registry.
func Lookup(name string) (*Type, error) {
	return defaultRegistry.Lookup(name)
}
