package position_pipeline_service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gridOfRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{"data"}
	}
	return rows
}

func TestSelectSheet_PreferredNameBeatsRowCount(t *testing.T) {
	sheets := []sheetGrid{
		{Name: "Sheet1", Rows: gridOfRows(200)},
		{Name: "Soupis praci", Rows: gridOfRows(50)},
	}

	selected, err := selectSheet(sheets, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Soupis praci", selected.Name)
}

func TestSelectSheet_RecapSheetsExcluded(t *testing.T) {
	sheets := []sheetGrid{
		{Name: "Rekapitulace", Rows: gridOfRows(500)},
		{Name: "Data", Rows: gridOfRows(10)},
	}

	selected, err := selectSheet(sheets, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Data", selected.Name)
}

func TestSelectSheet_TieGoesToEarliestIndex(t *testing.T) {
	sheets := []sheetGrid{
		{Name: "First", Rows: gridOfRows(30)},
		{Name: "Second", Rows: gridOfRows(30)},
	}

	selected, err := selectSheet(sheets, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "First", selected.Name)
}

func TestSelectSheet_EmptyWorkbook(t *testing.T) {
	_, err := selectSheet(nil, discardLogger())
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestSelectSheet_NoDataFallsBackToFirstSheet(t *testing.T) {
	sheets := []sheetGrid{
		{Name: "Empty1", Rows: [][]string{{"", ""}}},
		{Name: "Empty2", Rows: nil},
	}

	selected, err := selectSheet(sheets, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Empty1", selected.Name)
}

func TestDataRowCount_SkipsEmptyRows(t *testing.T) {
	sheet := sheetGrid{Rows: [][]string{
		{"a", ""},
		{"", ""},
		{"", "b"},
	}}
	assert.Equal(t, 2, dataRowCount(sheet))
}
