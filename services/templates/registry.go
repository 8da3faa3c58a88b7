// Package templates holds the intent template registry used to refine prompts.
package templates

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

var (
	// ErrDuplicateIntent is returned when an intent name appears twice
	ErrDuplicateIntent = errors.New("duplicate intent")

	// ErrIncompleteTemplate is returned when a template lacks a name, prefix or suffix
	ErrIncompleteTemplate = errors.New("incomplete template")
)

// IntentTemplate is the prefix/suffix pair wrapped around a base prompt.
type IntentTemplate struct {
	Name   string `yaml:"name" json:"name"`
	Label  string `yaml:"label" json:"label"`
	Prefix string `yaml:"prefix" json:"-"`
	Suffix string `yaml:"suffix" json:"-"`
}

type document struct {
	Intents []IntentTemplate `yaml:"intents"`
}

// Registry is an immutable intent -> template mapping. Safe for concurrent use.
type Registry struct {
	order     []string
	templates map[string]IntentTemplate
}

// Parse builds a Registry from a YAML document.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := &Registry{
		order:     make([]string, 0, len(doc.Intents)),
		templates: make(map[string]IntentTemplate, len(doc.Intents)),
	}
	for _, tpl := range doc.Intents {
		if tpl.Name == "" || tpl.Prefix == "" || tpl.Suffix == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncompleteTemplate, tpl.Name)
		}
		if _, exists := r.templates[tpl.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIntent, tpl.Name)
		}
		r.order = append(r.order, tpl.Name)
		r.templates[tpl.Name] = tpl
	}

	return r, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry built from the embedded template set.
// It panics if the embedded document is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultTemplates)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Lookup returns the template for intent. Unknown intents are not an error.
func (r *Registry) Lookup(intent string) (IntentTemplate, bool) {
	tpl, ok := r.templates[intent]
	return tpl, ok
}

// Intents returns the templates in declaration order.
func (r *Registry) Intents() []IntentTemplate {
	out := make([]IntentTemplate, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.templates[name])
	}
	return out
}

// Len returns the number of registered intents
func (r *Registry) Len() int {
	return len(r.order)
}
