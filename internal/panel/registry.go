package panel

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/five82/dashtrash/internal/config"
)

var (
	ErrNilFactory  = errors.New("panel: nil factory")
	ErrDuplicate   = errors.New("panel: duplicate registration")
	ErrUnknownType = errors.New("panel: unknown type")
)

// Factory builds a source from its descriptor.
type Factory func(config.Panel) (Source, error)

// Registry maps panel type names and plugin names to factories.
type Registry struct {
	mu      sync.RWMutex
	types   map[string]Factory
	plugins map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]Factory),
		plugins: make(map[string]Factory),
	}
}

// Register installs a factory for a panel type.
func (r *Registry) Register(name string, f Factory) error {
	return r.add(r.types, name, f)
}

// RegisterPlugin installs a factory reachable through type "plugin".
func (r *Registry) RegisterPlugin(name string, f Factory) error {
	return r.add(r.plugins, name, f)
}

func (r *Registry) add(into map[string]Factory, name string, f Factory) error {
	if f == nil {
		return ErrNilFactory
	}
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("panel: empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := into[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, key)
	}
	into[key] = f
	return nil
}

// Types lists registered panel types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.types)
}

// Plugins lists registered plugin names, sorted.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.plugins)
}

// Build creates the source for one descriptor. A plugin that is not
// registered yields a source rendering a "plugin not found" block rather
// than an error.
func (r *Registry) Build(p config.Panel) (Source, error) {
	kind := normalizeName(p.Type)
	r.mu.RLock()
	var (
		f  Factory
		ok bool
	)
	if kind == config.TypePlugin {
		f, ok = r.plugins[normalizeName(p.PluginName)]
	} else {
		f, ok = r.types[kind]
	}
	r.mu.RUnlock()

	if !ok {
		if kind == config.TypePlugin {
			return MissingPlugin(p.PluginName), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}
	src, err := f(p)
	if err != nil {
		return nil, fmt.Errorf("build %s panel: %w", describe(p), err)
	}
	if title := strings.TrimSpace(p.Title); title != "" {
		return titled{Source: src, title: title}, nil
	}
	return src, nil
}

// titled replaces the title a source renders with the configured one.
type titled struct {
	Source
	title string
}

func (t titled) Render(d Data) Content {
	c := t.Source.Render(d)
	c.Title = t.title
	return c
}

func (t titled) Close() error {
	if c, ok := t.Source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// MissingPlugin renders the block shown for an unregistered plugin name.
func MissingPlugin(name string) Source {
	return Static{Content: Content{
		Title: "Plugin Error",
		Body:  fmt.Sprintf("Plugin '%s' not found", name),
		Tone:  ToneError,
	}}
}

func describe(p config.Panel) string {
	if normalizeName(p.Type) == config.TypePlugin && p.PluginName != "" {
		return "plugin " + p.PluginName
	}
	return p.Type
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortedKeys(m map[string]Factory) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
