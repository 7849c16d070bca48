package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spellcoach/spellcoach/internal/word"
)

// XLSXImportConfig defines where words and hints live in a spreadsheet.
type XLSXImportConfig struct {
	FilePath   string
	SheetName  string
	WordColumn int // zero-based
	HintColumn int // zero-based
	SkipHeader bool
}

// DefaultXLSXImportConfig returns the layout most word lists use: words in
// column A, hints in column B, with a header row.
func DefaultXLSXImportConfig(filePath string) XLSXImportConfig {
	return XLSXImportConfig{
		FilePath:   filePath,
		SheetName:  "Sheet1",
		WordColumn: 0,
		HintColumn: 1,
		SkipHeader: true,
	}
}

// ImportXLSX reads a spreadsheet of word/hint rows into the word store.
// Rows with an empty word cell and duplicates of existing words are skipped.
func ImportXLSX(ctx context.Context, words word.Repository, cfg XLSXImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", cfg.FilePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", cfg.SheetName, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if cfg.SkipHeader && i == 0 {
			continue
		}

		text := strings.ToLower(strings.TrimSpace(cell(row, cfg.WordColumn)))
		hint := strings.TrimSpace(cell(row, cfg.HintColumn))
		if text == "" {
			result.WordsSkipped++
			continue
		}

		id, err := word.NewID()
		if err != nil {
			return nil, err
		}
		if err := words.Create(ctx, &word.Word{ID: id, Text: text, Hint: hint}); err != nil {
			if isDuplicateText(err) {
				result.WordsSkipped++
				continue
			}
			return nil, fmt.Errorf("words.Create(%s) > %w", text, err)
		}
		result.WordsCreated++
	}

	return result, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
