package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"saleseda/internal/errors"
)

func TestLoader_Load_Sample(t *testing.T) {
	path := writeCSV(t, sampleRecords(sampleRows))

	table, err := NewLoader(slog.Default()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, sampleRows, table.Nrow())
	assert.Equal(t, len(sampleHeader), table.Ncol())

	names := table.Names()
	assert.Equal(t, "transaction_id", names[1])
	assert.Equal(t, "payment_type", names[len(names)-1])

	tests := []struct {
		column string
		kind   ColumnKind
	}{
		{"transaction_id", KindString},
		{"timestamp", KindString},
		{"unit_price", KindFloat},
		{"quantity", KindInt},
		{"total", KindFloat},
		{"payment_type", KindString},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			kind, err := table.Kind(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.csv")
			},
			wantMsg: "does not exist",
		},
		{
			name: "empty file",
			path: func(t *testing.T) string {
				return writeText(t, "empty.csv", "")
			},
			wantMsg: "no header row",
		},
		{
			name: "header only",
			path: func(t *testing.T) string {
				return writeText(t, "header.csv", "a,b,c\n")
			},
			wantMsg: "no data rows",
		},
		{
			name: "ragged row",
			path: func(t *testing.T) string {
				return writeText(t, "ragged.csv", "a,b,c\n1,2,3\n4,5\n")
			},
			wantMsg: "malformed CSV at line 3",
		},
		{
			name: "duplicate header",
			path: func(t *testing.T) string {
				return writeText(t, "dup.csv", ",id,total,total\n0,a,1,2\n")
			},
			wantMsg: `duplicate column "total" in header positions 3 and 4`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Load(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeRead))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoader_Load_StripsBOMAndMarksMissing(t *testing.T) {
	path := writeText(t, "bom.csv", "\xEF\xBB\xBFname,price\nalpha,1.5\nbeta,NA\ngamma,\n")

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "price"}, table.Names())

	prices, err := table.Floats("price")
	require.NoError(t, err)
	assert.Equal(t, 1.5, prices[0])
	assert.True(t, isNaN(prices[1]))
	assert.True(t, isNaN(prices[2]))
}

func TestLoader_Load_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"", "transaction_id", "quantity", "note"},
		{"0", "a", "1", "x"},
		{"1", "b", "3"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewLoader(nil).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Nrow())
	assert.Equal(t, 4, table.Ncol())

	kind, err := table.Kind("quantity")
	require.NoError(t, err)
	assert.Equal(t, KindInt, kind)

	notes, missing, err := table.Strings("note")
	require.NoError(t, err)
	assert.Equal(t, "x", notes[0])
	assert.True(t, missing[1])
}
