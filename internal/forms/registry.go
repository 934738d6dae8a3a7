// Package forms holds the add-on templates the schema-driven deposit form
// can render. An add-on is a named template fragment owned by a decorator
// (the form theme), e.g. the "termsselect" widget of "bootstrapDecorator".
package forms

import (
	"sort"
	"sync"
)

// Default decorator and add-ons used by the deposit form.
const (
	BootstrapDecorator = "bootstrapDecorator"
	TermsSelect        = "termsselect"
	TermsSelectPath    = "/static/templates/deposit-form/termsselect.html"
)

// AddOn is a template fragment registered for a decorator.
type AddOn struct {
	Decorator    string `json:"decorator"`
	Name         string `json:"name"`
	TemplatePath string `json:"template_path"`
}

type key struct {
	decorator, name string
}

// Registry maps (decorator, name) pairs to template paths.
// It is safe for concurrent use; registration normally happens once at startup.
type Registry struct {
	mu     sync.RWMutex
	addOns map[key]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{addOns: make(map[key]string)}
}

// NewDefaultRegistry returns a Registry with the deposit form's add-ons.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Decorator(BootstrapDecorator).Register(TermsSelect, TermsSelectPath)
	return r
}

// DefineAddOn registers templatePath under decorator/name, replacing any
// previous path for the same pair.
func (r *Registry) DefineAddOn(decorator, name, templatePath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addOns[key{decorator, name}] = templatePath
}

// Lookup returns the add-on registered under decorator/name.
func (r *Registry) Lookup(decorator, name string) (AddOn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.addOns[key{decorator, name}]
	if !ok {
		return AddOn{}, false
	}
	return AddOn{Decorator: decorator, Name: name, TemplatePath: path}, true
}

// List returns every add-on ordered by decorator, then name.
func (r *Registry) List() []AddOn {
	r.mu.RLock()
	out := make([]AddOn, 0, len(r.addOns))
	for k, path := range r.addOns {
		out = append(out, AddOn{Decorator: k.decorator, Name: k.name, TemplatePath: path})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Decorator != out[j].Decorator {
			return out[i].Decorator < out[j].Decorator
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DecoratorRegistrar registers add-ons for a single decorator.
type DecoratorRegistrar struct {
	registry  *Registry
	decorator string
}

// Decorator returns a registrar bound to the named decorator.
func (r *Registry) Decorator(decorator string) DecoratorRegistrar {
	return DecoratorRegistrar{registry: r, decorator: decorator}
}

// Register adds the named template fragment to the bound decorator.
func (d DecoratorRegistrar) Register(name, templatePath string) {
	d.registry.DefineAddOn(d.decorator, name, templatePath)
}
