package core

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RegistryFile is the on-disk shape of the module registry (modules.yaml).
type RegistryFile struct {
	Modules []Module `yaml:"modules" json:"modules" jsonschema:"required,minItems=1"`
	Addons  []Addon  `yaml:"addons,omitempty" json:"addons,omitempty"`
}

var validModuleKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ModuleRegistry is the set of modules an actor may switch into, in display order.
type ModuleRegistry struct {
	modules []Module
	index   map[string]int
	def     int
	addons  []Addon
}

// LoadRegistry reads and validates a registry file.
func LoadRegistry(path string) (*ModuleRegistry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module registry: %w", err)
	}
	return ParseRegistry(b)
}

// ParseRegistry decodes registry YAML.
func ParseRegistry(data []byte) (*ModuleRegistry, error) {
	var f RegistryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse module registry: %w", err)
	}
	return NewRegistry(f.Modules, f.Addons)
}

// NewRegistry validates modules: at least one, unique well-formed keys, at most one default.
// Without an explicit default the first module is the default.
func NewRegistry(modules []Module, addons []Addon) (*ModuleRegistry, error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("module registry: no modules defined")
	}
	r := &ModuleRegistry{
		modules: make([]Module, len(modules)),
		index:   make(map[string]int, len(modules)),
		addons:  append([]Addon(nil), addons...),
	}
	copy(r.modules, modules)

	defaults := 0
	for i, m := range r.modules {
		if !validModuleKey.MatchString(m.Key) {
			return nil, fmt.Errorf("module registry: invalid key %q", m.Key)
		}
		if _, dup := r.index[m.Key]; dup {
			return nil, fmt.Errorf("module registry: duplicate key %q", m.Key)
		}
		if m.Title == "" {
			r.modules[i].Title = m.Key
		}
		r.index[m.Key] = i
		if m.Default {
			defaults++
			r.def = i
		}
	}
	if defaults > 1 {
		return nil, fmt.Errorf("module registry: %d modules marked default", defaults)
	}
	return r, nil
}

// Modules returns the modules in registry order.
func (r *ModuleRegistry) Modules() []Module {
	return append([]Module(nil), r.modules...)
}

// Get returns the module with key.
func (r *ModuleRegistry) Get(key string) (Module, bool) {
	i, ok := r.index[key]
	if !ok {
		return Module{}, false
	}
	return r.modules[i], true
}

func (r *ModuleRegistry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Default is the module used when an actor has none (or a stale one) selected.
func (r *ModuleRegistry) Default() Module {
	return r.modules[r.def]
}

func (r *ModuleRegistry) Addons() []Addon {
	return append([]Addon(nil), r.addons...)
}

// ModuleRedirectHook routes a switch into a module with a configured Redirect to that URL.
func (r *ModuleRegistry) ModuleRedirectHook() RedirectHook {
	return func(target, key string) string {
		if m, ok := r.Get(key); ok && m.Redirect != "" {
			return m.Redirect
		}
		return target
	}
}
