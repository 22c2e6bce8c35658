// Package importer provides CSV and Excel import of block count lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/GridCalc/internal/data"
	"github.com/piwi3910/GridCalc/internal/grid"
)

// Entry is one imported block count. Direction is set only for thruster
// rows; Directed reports which of the two count tables it belongs in.
type Entry struct {
	Group     data.Group
	ID        data.BlockID
	Direction data.Direction
	Directed  bool
	Count     uint64
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Entries  []Entry
	Errors   []string
	Warnings []string
}

// Apply writes every imported entry into the calculator.
func (r ImportResult) Apply(c *grid.Calculator) {
	for _, e := range r.Entries {
		if e.Directed {
			c.SetThrusterCount(e.Direction, e.ID, e.Count)
		} else {
			c.SetCount(e.Group, e.ID, e.Count)
		}
	}
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Block     int
	Direction int
	Count     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"block":     {"block", "id", "block id", "block_id", "name", "item"},
	"direction": {"direction", "dir", "thrust direction", "orientation"},
	"count":     {"count", "quantity", "qty", "num", "amount", "n"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(raw []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(raw))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or a default
// positional mapping (block, direction, count) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Block:     -1,
		Direction: -1,
		Count:     -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "block":
						if mapping.Block == -1 {
							mapping.Block = i
						}
					case "direction":
						if mapping.Direction == -1 {
							mapping.Direction = i
						}
					case "count":
						if mapping.Count == -1 {
							mapping.Count = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Block: 0, Direction: 1, Count: 2}, false
	}

	return mapping, true
}

// parseDirection converts a direction string to a data.Direction.
// Returns the direction and whether the string was recognized.
func parseDirection(s string) (data.Direction, bool) {
	var dir data.Direction
	if err := dir.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return 0, false
	}
	return dir, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Entry from a row using the given column mapping.
// Returns the entry, any error message, and any warning message.
func parseRow(d *data.Data, row []string, mapping ColumnMapping, rowLabel string) (Entry, string, string) {
	idStr := getCell(row, mapping.Block)
	if idStr == "" {
		return Entry{}, fmt.Sprintf("%s: Missing block id", rowLabel), ""
	}
	id := data.BlockID(idStr)
	block, ok := d.Block(id)
	if !ok {
		return Entry{}, fmt.Sprintf("%s: Unknown block id '%s'", rowLabel, idStr), ""
	}

	countStr := getCell(row, mapping.Count)
	if countStr == "" {
		return Entry{}, fmt.Sprintf("%s: Missing count value", rowLabel), ""
	}
	count, err := strconv.ParseUint(countStr, 10, 64)
	if err != nil {
		return Entry{}, fmt.Sprintf("%s: Invalid count '%s'", rowLabel, countStr), ""
	}

	entry := Entry{Group: block.Group, ID: id, Count: count}

	dirStr := getCell(row, mapping.Direction)
	if block.Group == data.GroupThrusters {
		if dirStr == "" {
			return Entry{}, fmt.Sprintf("%s: Thruster '%s' needs a direction", rowLabel, idStr), ""
		}
		dir, ok := parseDirection(dirStr)
		if !ok {
			return Entry{}, fmt.Sprintf("%s: Unknown direction '%s'", rowLabel, dirStr), ""
		}
		entry.Direction = dir
		entry.Directed = true
		return entry, "", ""
	}

	var warning string
	if dirStr != "" {
		warning = fmt.Sprintf("%s: Direction '%s' ignored for non-thruster block", rowLabel, dirStr)
	}
	return entry, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports block counts from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(d *data.Data, path string) ImportResult {
	result := ImportResult{}

	raw, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(raw)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(d, records, "Line", result.Warnings)
}

// ImportCSVFromReader imports block counts from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(d *data.Data, reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(d, records, "Line", nil)
}

// ImportExcel imports block counts from an Excel (.xlsx) file.
// Workbooks written by the exporter carry dedicated Blocks and Thrusters
// sheets; those are read when present, otherwise the first sheet is used.
// Column mapping is auto-detected from headers either way.
func ImportExcel(d *data.Data, path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	read := sheets[:1]
	var named []string
	for _, name := range sheets {
		if name == "Blocks" || name == "Thrusters" {
			named = append(named, name)
		}
	}
	if len(named) > 0 {
		read = named
	}

	var rows [][]string
	for _, name := range read {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
			return result
		}
		if len(rows) > 0 && len(sheetRows) > 0 {
			// Later sheets repeat the header row; importFromRows only
			// skips the first one.
			if _, isHeader := DetectColumns(sheetRows[0]); isHeader {
				sheetRows = sheetRows[1:]
			}
		}
		rows = append(rows, sheetRows...)
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(d, rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into entries.
func importFromRows(d *data.Data, rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Block == -1 {
			missing = append(missing, "Block")
		}
		if mapping.Count == -1 {
			missing = append(missing, "Count")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 && !d.Knows(data.BlockID(strings.TrimSpace(rows[0][0]))) {
		// First cell is not a catalog id: treat the row as an
		// unrecognized header but keep positional mapping.
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		entry, errMsg, warning := parseRow(d, row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Entries = append(result.Entries, entry)
	}

	return result
}
