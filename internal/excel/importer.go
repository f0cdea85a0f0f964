package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/flashdeck/internal/database"
	"github.com/example/flashdeck/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath     string // Path to the Excel or CSV file
	SetName      string // Target card set
	WordColumn   string // Column with the word
	AnswerColumn string // Column with the answer
	SheetName    string // Name of the sheet to import
	StartRow     int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:   "A",
		AnswerColumn: "B",
		SheetName:    "Sheet1",
		StartRow:     2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportCards imports cards from an Excel or CSV file into a set.
// The set is created when it does not exist yet. Existing cards keep their
// level and schedule; only the answer is refreshed.
func ImportCards(config ImportConfig) (*ImportResult, error) {
	if config.SetName == "" {
		return nil, fmt.Errorf("set name is required")
	}

	sets := database.NewSetRepository()
	exists, err := sets.Exists(config.SetName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := sets.Create(config.SetName, ""); err != nil {
			return nil, err
		}
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports cards from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	cards := database.NewCardRepository()

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, cards, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports cards from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow lazy quotes for custom CSV format

	result := &ImportResult{Errors: make([]string, 0)}
	cards := database.NewCardRepository()

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, cards, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow imports a single row into the target set
func processRow(row []string, config ImportConfig, cards *database.CardRepository, result *ImportResult) error {
	word := cellValue(row, config.WordColumn)
	answer := cellValue(row, config.AnswerColumn)

	if word == "" || answer == "" {
		result.Skipped++
		return nil
	}

	existing, err := cards.Get(config.SetName, word)
	if err == nil {
		// Keep the learning state, refresh the answer only.
		existing.Answer = answer
		if err := cards.Upsert(existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	card := &models.Card{
		SetName: config.SetName,
		Word:    word,
		Answer:  answer,
	}
	if err := cards.Upsert(card); err != nil {
		return err
	}
	result.Created++
	return nil
}

// cellValue returns the trimmed cell at the given column letter, or ""
// when the row is too short.
func cellValue(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnIndex converts an Excel column letter ("A", "B", ... "AA") to a
// zero-based index.
func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}

	idx := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}
