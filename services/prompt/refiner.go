package prompt

import (
	"github.com/upb/prompt-router/services/templates"
)

// TemplateLookup resolves an intent to its template
type TemplateLookup interface {
	Lookup(intent string) (templates.IntentTemplate, bool)
}

// Refiner rewrites a base prompt using the template registered for an intent
type Refiner struct {
	templates TemplateLookup
}

// NewRefiner creates a new Refiner backed by the given templates
func NewRefiner(templates TemplateLookup) *Refiner {
	return &Refiner{templates: templates}
}

// Refine returns prefix + basePrompt + suffix for a known intent and
// basePrompt unchanged otherwise. Template parts are not trimmed.
func (r *Refiner) Refine(basePrompt, intent string) string {
	refined, _ := r.RefineMatched(basePrompt, intent)
	return refined
}

// RefineMatched is Refine that also reports whether a template was applied
func (r *Refiner) RefineMatched(basePrompt, intent string) (string, bool) {
	if r == nil || r.templates == nil {
		return basePrompt, false
	}
	tpl, ok := r.templates.Lookup(intent)
	if !ok {
		return basePrompt, false
	}
	return tpl.Prefix + basePrompt + tpl.Suffix, true
}
