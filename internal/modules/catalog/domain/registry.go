package domain

import (
	"fmt"
	"sort"

	apperrors "apnea/internal/platform/errors"
	"apnea/internal/platform/slug"
)

// Registry maps session-type names to their current template. Edited
// templates shadow the built-in defaults until reset.
type Registry struct {
	defaults  map[string]Template
	overrides map[string]Template
}

func NewRegistry(overrides map[string]Template) *Registry {
	r := &Registry{defaults: builtins(), overrides: map[string]Template{}}
	for name, t := range overrides {
		if _, ok := r.defaults[name]; !ok || t.Validate() != nil {
			continue
		}
		r.overrides[name] = t.Clone()
	}
	return r
}

// Canonical resolves an exact name or its slug ("co2-tolerance") to the
// registered session-type name.
func (r *Registry) Canonical(name string) (string, bool) {
	if _, ok := r.defaults[name]; ok {
		return name, true
	}
	want := slug.Make(name)
	for _, candidate := range Names {
		if slug.Make(candidate) == want {
			return candidate, true
		}
	}
	return "", false
}

// Get returns the current template for name. Unknown names yield the zero
// template and false.
func (r *Registry) Get(name string) (Template, bool) {
	if t, ok := r.overrides[name]; ok {
		return t.Clone(), true
	}
	t, ok := r.defaults[name]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

// Default returns the built-in template for name, ignoring edits.
func (r *Registry) Default(name string) (Template, bool) {
	t, ok := r.defaults[name]
	return t.Clone(), ok
}

// Set replaces the template for name wholesale. The strategy of a built-in
// type cannot be changed; an empty strategy inherits the built-in one. Values
// out of range are rejected with ErrInvalidInput.
func (r *Registry) Set(name string, t Template) error {
	def, ok := r.defaults[name]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownSessionType, name)
	}
	if t.Strategy == "" {
		t.Strategy = def.Strategy
	}
	if t.Strategy != def.Strategy {
		return fmt.Errorf("%w: %s uses %s, got %s", apperrors.ErrTemplateShape, name, def.Strategy, t.Strategy)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.overrides[name] = t.Clone()
	return nil
}

// Reset drops any edit of name and reports whether one existed.
func (r *Registry) Reset(name string) bool {
	_, ok := r.overrides[name]
	delete(r.overrides, name)
	return ok
}

func (r *Registry) Overridden(name string) bool {
	_, ok := r.overrides[name]
	return ok
}

// Overrides returns a copy of every edited template.
func (r *Registry) Overrides() map[string]Template {
	out := make(map[string]Template, len(r.overrides))
	for name, t := range r.overrides {
		out[name] = t.Clone()
	}
	return out
}

// OverriddenNames lists edited types in a stable order.
func (r *Registry) OverriddenNames() []string {
	names := make([]string, 0, len(r.overrides))
	for name := range r.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
