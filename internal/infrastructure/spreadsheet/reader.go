// Package spreadsheet turns uploaded catalog files into string-valued records.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matchboard/backend/internal/domain"
)

// Format identifies a supported upload format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks the reader from the uploaded file name
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedSpreadsheet, filepath.Ext(filename))
	}
}

// Read parses an uploaded spreadsheet. The first row is the header; every
// later non-blank row becomes one record.
func Read(filename string, r io.Reader) ([]domain.Record, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// ReadXLSX reads the first worksheet of an Excel workbook
func ReadXLSX(r io.Reader) ([]domain.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidSpreadsheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	return buildRecords(rows)
}

// ReadCSV reads a comma separated file, tolerating a UTF-8 BOM and ragged rows
func ReadCSV(r io.Reader) ([]domain.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	return buildRecords(rows)
}

// buildRecords maps rows onto the cleaned header. Missing cells become "".
func buildRecords(rows [][]string) ([]domain.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", domain.ErrInvalidSpreadsheet)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: no header row", domain.ErrInvalidSpreadsheet)
	}

	headers := cleanHeaders(rows[0], width)
	records := make([]domain.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		var record domain.Record
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record.Set(header, value)
		}
		records = append(records, record)
	}

	return records, nil
}

// cleanHeaders names unnamed columns "Unnamed: i" and suffixes repeated
// names with ".1", ".2" so every column keeps a distinct key.
func cleanHeaders(raw []string, width int) []string {
	headers := make([]string, width)
	used := make(map[string]bool, width)
	suffixes := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for used[candidate] {
			suffixes[name]++
			candidate = name + "." + strconv.Itoa(suffixes[name])
		}
		used[candidate] = true
		headers[i] = candidate
	}

	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// IsFormatError reports whether err came from an unreadable or unsupported upload
func IsFormatError(err error) bool {
	return errors.Is(err, domain.ErrUnsupportedSpreadsheet) || errors.Is(err, domain.ErrInvalidSpreadsheet)
}
