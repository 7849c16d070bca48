package openai

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spellcoach/spellcoach/internal/inference"
)

const maxTemplateLength = 2000

// BuildPrompt renders the user message for a generation request. A custom
// template is sanitized and its placeholders substituted; without one the
// built-in phrasing is used. The avoid list is always appended by the code,
// never left to the template.
func BuildPrompt(args inference.GenerateWordsRequest) string {
	topic := sanitizeField(args.Topic)
	if topic == "" {
		topic = "everyday life"
	}
	age := args.Age
	if age <= 0 {
		age = 8
	}

	var prompt string
	if template := sanitizeTemplate(args.PromptTemplate); template != "" {
		replacer := strings.NewReplacer(
			"{{topic}}", topic,
			"{{count}}", strconv.Itoa(args.Count),
			"{{age}}", strconv.Itoa(age),
		)
		prompt = replacer.Replace(template)
	} else {
		prompt = fmt.Sprintf("Suggest %d spelling words about %s for a %d year old child. Give each word a short hint sentence that does not contain the word.", args.Count, topic, age)
	}

	if len(args.AvoidWords) > 0 {
		avoid := make([]string, 0, len(args.AvoidWords))
		for _, w := range args.AvoidWords {
			if w = sanitizeField(w); w != "" {
				avoid = append(avoid, w)
			}
		}
		if len(avoid) > 0 {
			prompt += "\nAvoid: " + strings.Join(avoid, ", ")
		}
	}

	return prompt
}

// sanitizeTemplate strips control characters and caps the length of a
// user-supplied template. The template is learner-editable text that ends up
// in the API request, so it gets the same treatment as any untrusted input.
func sanitizeTemplate(template string) string {
	template = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, template)
	template = strings.Join(strings.Fields(template), " ")
	if len(template) > maxTemplateLength {
		cut := template[:maxTemplateLength]
		// Back off a partially cut multi-byte rune.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		template = cut
	}
	return template
}

func sanitizeField(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// SanitizeSuggestions validates model output: words must be letters only
// (apostrophe and hyphen allowed), hints must not contain the word, and
// duplicates of the avoid list or of earlier suggestions are dropped. The
// result is truncated to the requested count.
func SanitizeSuggestions(suggestions []inference.WordSuggestion, args inference.GenerateWordsRequest) []inference.WordSuggestion {
	avoid := make(map[string]struct{}, len(args.AvoidWords))
	for _, w := range args.AvoidWords {
		avoid[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	count := args.Count
	if count <= 0 {
		count = inference.DefaultGenerateCount
	}

	var cleaned []inference.WordSuggestion
	for _, s := range suggestions {
		w := strings.ToLower(strings.TrimSpace(s.Word))
		hint := sanitizeField(s.Hint)

		if !isSpellableWord(w) || hint == "" {
			continue
		}
		if strings.Contains(strings.ToLower(hint), w) {
			continue
		}
		if _, ok := avoid[w]; ok {
			continue
		}
		avoid[w] = struct{}{}

		cleaned = append(cleaned, inference.WordSuggestion{Word: w, Hint: hint})
		if len(cleaned) == count {
			break
		}
	}
	return cleaned
}

func isSpellableWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}
