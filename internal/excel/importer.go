// Package excel imports cards from spreadsheet files into deck files.
package excel

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/recall/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	DeckName         string // Name of the deck to create
	OutDir           string // Directory the deck file is written to
	IDColumn         string // Column with the card id; empty means derive from the front
	FrontColumn      string // Column with the prompt side
	BackColumn       string // Column with the answer side
	DifficultyColumn string // Column with the difficulty (1-3)
	ConceptRefColumn string // Column with the concept reference
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
	Force            bool   // Overwrite an existing deck file
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FrontColumn:      "A",
		BackColumn:       "B",
		DifficultyColumn: "C",
		ConceptRefColumn: "D",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
	OutPath        string
}

// ImportCards reads cards from an Excel or CSV file and writes them out
// as a JSON deck file
func ImportCards(config ImportConfig) (*ImportResult, error) {
	if config.DeckName == "" {
		base := filepath.Base(config.FilePath)
		config.DeckName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = rowsFromCSV(config.FilePath)
	} else {
		rows, err = rowsFromExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	seen := make(map[string]bool)
	cards := make([]models.Card, 0, len(rows))

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		card, err := cardFromRow(row, config, seen)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		seen[card.ID] = true
		cards = append(cards, card)
		result.Created++
	}

	outPath, err := writeDeckFile(config, cards)
	if err != nil {
		return nil, err
	}
	result.OutPath = outPath
	return result, nil
}

// rowsFromExcel reads all rows of one sheet from an Excel file
func rowsFromExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// rowsFromCSV reads all records from a CSV file
func rowsFromCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cardFromRow builds one card from a spreadsheet row
func cardFromRow(row []string, config ImportConfig, seen map[string]bool) (models.Card, error) {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	card := models.Card{
		Front:      cell(config.FrontColumn),
		Back:       cell(config.BackColumn),
		ConceptRef: cell(config.ConceptRefColumn),
		Deck:       config.DeckName,
	}
	if card.Front == "" {
		return models.Card{}, fmt.Errorf("front cannot be empty")
	}
	if card.Back == "" {
		return models.Card{}, fmt.Errorf("back cannot be empty")
	}

	if s := cell(config.DifficultyColumn); s != "" {
		card.Difficulty = models.Difficulty(parseIntOrDefault(s, 1, 3, int(models.DifficultyMedium)))
	}

	card.ID = cell(config.IDColumn)
	if card.ID == "" {
		card.ID = config.DeckName + "-" + slugify(card.Front)
	}
	if seen[card.ID] {
		return models.Card{}, fmt.Errorf("duplicate card id %q", card.ID)
	}

	return card, nil
}

// writeDeckFile stores the imported cards as a JSON deck file
func writeDeckFile(config ImportConfig, cards []models.Card) (string, error) {
	if err := os.MkdirAll(config.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create deck directory: %w", err)
	}

	outPath := filepath.Join(config.OutDir, config.DeckName+".json")
	if !config.Force {
		if _, err := os.Stat(outPath); err == nil {
			return "", fmt.Errorf("deck file %s already exists", outPath)
		}
	}

	// The deck name lives in the file, so renaming the file later does
	// not rename the deck.
	doc := struct {
		Name  string        `json:"name"`
		Cards []models.Card `json:"cards"`
	}{Name: config.DeckName, Cards: cards}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal deck: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write deck file: %w", err)
	}
	return outPath, nil
}

// slugify turns a card front into a stable id fragment
func slugify(text string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

// Helper function to parse integer within a range
func parseIntInRange(s string, min, max int) (int, error) {
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return min, err
	}
	if val < min {
		return min, nil
	}
	if val > max {
		return max, nil
	}
	return val, nil
}

// Helper function to parse integer with default value
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	if val, err := parseIntInRange(s, min, max); err == nil {
		return val
	}
	return defaultVal
}
