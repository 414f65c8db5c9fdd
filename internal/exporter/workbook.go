package exporter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"saleseda/internal/dataprocessing"
	"saleseda/internal/validation"
)

// Workbook sheet names
const (
	SheetStatistics  = "Statistics"
	SheetCorrelation = "Correlation"
	SheetQuality     = "Quality"
)

// maxSheetName is the Excel limit on sheet name length
const maxSheetName = 31

var invalidSheetChars = regexp.MustCompile(`[\[\]:*?/\\]`)

// BuildWorkbook lays out the statistics, correlation matrix and quality
// findings, plus one sheet with a column chart per categorical column.
// The caller closes the returned file.
func BuildWorkbook(report Report, categorical []string) (*excelize.File, error) {
	f := excelize.NewFile()
	r := report.Results

	if err := f.SetSheetName("Sheet1", SheetStatistics); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DCE6F1"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	statistics := make([][]interface{}, 0, len(r.NumericColumns))
	for _, column := range r.NumericColumns {
		s, ok := r.Statistics[column]
		if !ok {
			continue
		}
		statistics = append(statistics, []interface{}{
			column, s.Count,
			cellFloat(s.Mean), cellFloat(s.Std), cellFloat(s.Min),
			cellFloat(s.P25), cellFloat(s.P50), cellFloat(s.P75),
			cellFloat(s.Max), cellFloat(s.Skew),
		})
	}
	if err := writeSheet(f, SheetStatistics, header, StatisticsHeaders, statistics); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetCorrelation); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %s: %w", SheetCorrelation, err)
	}
	correlation := make([][]interface{}, len(r.Correlation.Columns))
	for i, column := range r.Correlation.Columns {
		row := []interface{}{column}
		for _, v := range r.Correlation.Values[i] {
			row = append(row, cellFloat(v))
		}
		correlation[i] = row
	}
	if err := writeSheet(f, SheetCorrelation, header, append([]string{""}, r.Correlation.Columns...), correlation); err != nil {
		f.Close()
		return nil, err
	}

	if report.Quality != nil {
		if err := writeQualitySheet(f, header, *report.Quality); err != nil {
			f.Close()
			return nil, err
		}
	}

	for _, column := range categorical {
		vr, ok := r.Reports[column]
		if !ok {
			continue
		}
		if err := writeCategorySheet(f, header, vr); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeQualitySheet(f *excelize.File, style int, quality validation.QualityReport) error {
	if _, err := f.NewSheet(SheetQuality); err != nil {
		return fmt.Errorf("create sheet %s: %w", SheetQuality, err)
	}
	rows := make([][]interface{}, len(quality.Findings))
	for i, finding := range quality.Findings {
		rows[i] = []interface{}{finding.Row, finding.TransactionID, finding.Kind, finding.Field, finding.Message}
	}
	return writeSheet(f, SheetQuality, style, []string{"row", "transaction_id", "kind", "field", "message"}, rows)
}

// writeCategorySheet writes the frequency table of one column and charts it
// next to the table
func writeCategorySheet(f *excelize.File, style int, report dataprocessing.ValueReport) error {
	sheet := SheetName(report.Column)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := make([][]interface{}, len(report.Frequencies))
	for i, vc := range report.Frequencies {
		rows[i] = []interface{}{vc.Value, vc.Count}
	}
	if err := writeSheet(f, sheet, style, []string{report.Column, "count"}, rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	last := len(rows) + 1
	err := f.AddChart(sheet, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Count Plot for " + report.Column}},
		Legend: excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{
			Width:  640,
			Height: 360,
		},
	})
	if err != nil {
		return fmt.Errorf("add chart to %s: %w", sheet, err)
	}
	return nil
}

// writeSheet writes a bold header row then the data rows from A1
func writeSheet(f *excelize.File, sheet string, style int, headers []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}
	if len(headers) > 0 {
		end, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return fmt.Errorf("header range of %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
			return fmt.Errorf("style header of %s: %w", sheet, err)
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d of %s: %w", i, sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i, sheet, err)
		}
	}
	return nil
}

// SheetName makes a column name usable as a sheet name
func SheetName(column string) string {
	name := invalidSheetChars.ReplaceAllString(column, "_")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "column"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}
