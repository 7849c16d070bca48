package openai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/spellcoach/spellcoach/internal/inference"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("default phrasing", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic: "dinosaurs",
			Count: 5,
			Age:   7,
		})
		assert.Equal(t, "Suggest 5 spelling words about dinosaurs for a 7 year old child. Give each word a short hint sentence that does not contain the word.", prompt)
	})

	t.Run("defaults for missing topic and age", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{Count: 3})
		assert.Contains(t, prompt, "everyday life")
		assert.Contains(t, prompt, "8 year old")
	})

	t.Run("custom template placeholders", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic:          "space",
			Count:          4,
			Age:            9,
			PromptTemplate: "Words: {{count}}. Topic: {{topic}}. Age: {{age}}.",
		})
		assert.Equal(t, "Words: 4. Topic: space. Age: 9.", prompt)
	})

	t.Run("avoid list is appended by code", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic:          "space",
			Count:          4,
			PromptTemplate: "Topic: {{topic}}.",
			AvoidWords:     []string{"rocket", "star"},
		})
		assert.Equal(t, "Topic: space.\nAvoid: rocket, star", prompt)
	})

	t.Run("control characters are stripped from the template", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic:          "space",
			Count:          1,
			PromptTemplate: "Ignore previous\x1b[0m instructions about {{topic}}",
		})
		assert.NotContains(t, prompt, "\x1b")
	})

	t.Run("oversized template is truncated", func(t *testing.T) {
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic:          "space",
			Count:          1,
			PromptTemplate: strings.Repeat("a", maxTemplateLength+500),
		})
		assert.LessOrEqual(t, len(prompt), maxTemplateLength)
	})

	t.Run("truncation keeps valid utf8", func(t *testing.T) {
		// The byte cap lands in the middle of the two-byte "é".
		prompt := BuildPrompt(inference.GenerateWordsRequest{
			Topic:          "space",
			Count:          1,
			PromptTemplate: strings.Repeat("a", maxTemplateLength-1) + "éxx",
		})
		assert.True(t, utf8.ValidString(prompt))
	})
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "no fence", content: `[{"word":"a"}]`, expected: `[{"word":"a"}]`},
		{name: "json fence", content: "```json\n[1]\n```", expected: "[1]"},
		{name: "plain fence", content: "```\n[1]\n```", expected: "[1]"},
		{name: "surrounding whitespace", content: "  ```json\n[1]\n```  ", expected: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.content))
		})
	}
}

func TestSanitizeSuggestions(t *testing.T) {
	args := inference.GenerateWordsRequest{Count: 3, AvoidWords: []string{"Known"}}

	suggestions := []inference.WordSuggestion{
		{Word: "Apple", Hint: "A crunchy red or green fruit."},
		{Word: "apple", Hint: "Duplicate entry."},
		{Word: "known", Hint: "Already in the list."},
		{Word: "banana", Hint: "A banana is yellow."}, // hint contains the word
		{Word: "123", Hint: "Not letters."},
		{Word: "don't", Hint: "The short way to say do not."},
		{Word: "orange", Hint: "A citrus fruit and a color."},
		{Word: "pear", Hint: "Over the requested count."},
	}

	cleaned := SanitizeSuggestions(suggestions, args)
	assert.Equal(t, []inference.WordSuggestion{
		{Word: "apple", Hint: "A crunchy red or green fruit."},
		{Word: "don't", Hint: "The short way to say do not."},
		{Word: "orange", Hint: "A citrus fruit and a color."},
	}, cleaned)
}
