package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned by Resolve when neither name is registered.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by lower-cased name. The page handler picks one
// per request from the "format" query value.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := formatKey(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.renderers[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Resolve returns the renderer registered as format, falling back to the
// renderer registered as fallback when format is empty or unknown.
func (r *Registry) Resolve(format, fallback string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range []string{format, fallback} {
		if renderer, ok := r.renderers[formatKey(name)]; ok {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (fallback %q)", ErrRendererNotFound, format, fallback)
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
