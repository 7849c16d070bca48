package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"

	"github.com/spellcoach/spellcoach/internal/word"
)

// RenderSheetMarkdown builds a printable practice sheet: each hint followed
// by a blank line to write the word on. The answer key goes on its own page
// so it can be kept by the parent.
func RenderSheetMarkdown(words []word.Word, title string, date time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("January 2, 2006"))

	for i, w := range words {
		hint := w.Hint
		if hint == "" {
			hint = "(no hint)"
		}
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, hint)
		b.WriteString("   `________________________`\n\n")
	}

	b.WriteString("\n---\n\n## Answer key\n\n")
	for i, w := range words {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w.Text)
	}

	return b.String()
}

// WriteSheetPDF renders the practice sheet markdown into the output
// directory and converts it to PDF. It returns the PDF path.
func WriteSheetPDF(words []word.Word, title, outputDir string, date time.Time) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("no words to print")
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
	}

	base := fmt.Sprintf("practice-sheet-%s", date.Format("2006-01-02"))
	markdownPath := filepath.Join(outputDir, base+".md")
	content := RenderSheetMarkdown(words, title, date)
	if err := os.WriteFile(markdownPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}

	pdfPath := filepath.Join(outputDir, base+".pdf")
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process([]byte(content)); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
