package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/prompt-router/services/templates"
)

func TestRefine_KnownIntents(t *testing.T) {
	registry := templates.Default()
	refiner := NewRefiner(registry)

	for _, tpl := range registry.Intents() {
		t.Run(tpl.Name, func(t *testing.T) {
			base := "a cat sitting on a windowsill"
			got, matched := refiner.RefineMatched(base, tpl.Name)

			assert.True(t, matched)
			assert.Equal(t, tpl.Prefix+base+tpl.Suffix, got)
			assert.Equal(t, got, refiner.Refine(base, tpl.Name))
		})
	}
}

func TestRefine_ExactText(t *testing.T) {
	refiner := NewRefiner(templates.Default())

	tests := []struct {
		intent string
		want   string
	}{
		{
			intent: "image_generation",
			want: "Create a detailed image prompt for AI generation: a cat" +
				"\n\nAdditional requirements:" +
				"\n- Specify artistic style, lighting, composition" +
				"\n- Include technical details like camera angle, resolution preferences" +
				"\n- Mention color palette and mood" +
				"\n- Be specific about subject details and environment",
		},
		{
			intent: "code_generation",
			want: "Generate clean, well-documented code for: a cat" +
				"\n\nRequirements:" +
				"\n- Include proper error handling" +
				"\n- Add comprehensive comments" +
				"\n- Follow best practices and conventions" +
				"\n- Provide usage examples" +
				"\n- Consider edge cases and validation",
		},
		{
			intent: "research",
			want: "Conduct thorough research on: a cat" +
				"\n\nResearch guidelines:" +
				"\n- Provide credible sources and citations" +
				"\n- Include multiple perspectives" +
				"\n- Analyze current trends and developments" +
				"\n- Present factual, unbiased information" +
				"\n- Structure findings logically",
		},
		{
			intent: "general_knowledge",
			want: "Provide comprehensive information about: a cat" +
				"\n\nResponse format:" +
				"\n- Start with a clear definition or overview" +
				"\n- Include relevant examples and context" +
				"\n- Explain key concepts and relationships" +
				"\n- Use accessible language" +
				"\n- Provide practical applications where relevant",
		},
		{
			intent: "latest_info",
			want: "Find the most current information about: a cat" +
				"\n\nInformation requirements:" +
				"\n- Focus on recent developments and updates" +
				"\n- Include dates and timeline context" +
				"\n- Verify information from multiple sources" +
				"\n- Highlight what's new or changed" +
				"\n- Provide context for recent events",
		},
	}

	require.Len(t, tests, templates.Default().Len())
	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			got, matched := refiner.RefineMatched("a cat", tt.intent)
			assert.True(t, matched)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefine_UnknownIntentIsIdentity(t *testing.T) {
	refiner := NewRefiner(templates.Default())

	tests := []struct {
		name   string
		prompt string
		intent string
	}{
		{name: "unknown intent", prompt: "hello", intent: "poetry"},
		{name: "empty intent", prompt: "hello", intent: ""},
		{name: "whitespace intent", prompt: "hello", intent: " research "},
		{name: "uppercase intent", prompt: "hello", intent: "RESEARCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := refiner.RefineMatched(tt.prompt, tt.intent)
			assert.False(t, matched)
			assert.Equal(t, tt.prompt, got)
		})
	}
}

func TestRefine_NeverPanics(t *testing.T) {
	refiner := NewRefiner(templates.Default())

	inputs := []string{
		"",
		"   ",
		"日本語のプロンプト 🎨",
		"\x00\xff invalid utf8",
		strings.Repeat("long prompt ", 100000),
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = refiner.Refine(in, "research")
			_ = refiner.Refine(in, "nope")
		})
	}

	assert.Equal(t, "", refiner.Refine("", "nope"))

	var nilRefiner *Refiner
	assert.Equal(t, "x", nilRefiner.Refine("x", "research"))
	assert.Equal(t, "x", NewRefiner(nil).Refine("x", "research"))
}

func BenchmarkRefine(b *testing.B) {
	refiner := NewRefiner(templates.Default())
	for i := 0; i < b.N; i++ {
		_ = refiner.Refine("benchmark prompt", "code_generation")
	}
}
