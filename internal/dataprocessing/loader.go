package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"saleseda/internal/errors"
	"saleseda/internal/validation"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads a delimited or spreadsheet sales sample into a Table
type Loader struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewLoader creates a loader that logs through logger
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// Load reads the file at path. The first row is the header; column types are
// inferred from the values and every row must have as many cells as the header.
func (l *Loader) Load(ctx context.Context, path string) (*Table, error) {
	format, err := l.validator.ValidateInputFile(path)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case validation.FormatXLSX:
		records, err = readExcelRecords(path)
	default:
		records, err = readCSVRecords(path)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to read input",
			slog.String("file", path),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return nil, err
	}

	table, err := NewTableFromRecords(records)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Loaded sales sample",
		slog.String("file", path),
		slog.String("format", format),
		slog.Int("rows", table.Nrow()),
		slog.Int("columns", table.Ncol()))

	return table, nil
}

// readCSVRecords reads a comma-separated file, dropping a leading byte order mark
func readCSVRecords(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to read %s", path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if stderrors.As(err, &perr) {
			return nil, errors.NewReadError(fmt.Sprintf("malformed CSV at line %d", perr.Line), err).
				WithContext("line", perr.Line)
		}
		return nil, errors.NewReadError("malformed CSV", err)
	}
	if len(records) > 0 {
		trimHeader(records[0])
	}
	return records, nil
}

// readExcelRecords reads the first worksheet of a workbook
func readExcelRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewReadError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}

	// Drop trailing blank rows
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return rows, nil
	}

	trimHeader(rows[0])
	width := len(rows[0])
	for i, row := range rows {
		// excelize omits trailing empty cells
		if len(row) > width {
			return nil, errors.NewReadError(
				fmt.Sprintf("row %d has %d cells but the header has %d", i+1, len(row), width), nil).
				WithContext("line", i+1)
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows, nil
}

func trimHeader(header []string) {
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
