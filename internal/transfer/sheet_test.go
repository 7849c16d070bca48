package transfer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spellcoach/spellcoach/internal/word"
)

func TestRenderSheetMarkdown(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	words := []word.Word{
		{Text: "because", Hint: "The reason for something."},
		{Text: "friend", Hint: ""},
	}

	content := RenderSheetMarkdown(words, "Week 9 Spelling", date)

	assert.Contains(t, content, "# Week 9 Spelling")
	assert.Contains(t, content, "Date: March 1, 2026")
	assert.Contains(t, content, "1. The reason for something.")
	assert.Contains(t, content, "2. (no hint)")
	assert.Contains(t, content, "## Answer key")
	assert.Contains(t, content, "1. because")
	assert.Contains(t, content, "2. friend")

	// Hints come before the answer key.
	assert.Less(t, strings.Index(content, "The reason"), strings.Index(content, "Answer key"))
}
