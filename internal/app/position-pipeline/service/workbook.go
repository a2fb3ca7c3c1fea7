package position_pipeline_service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// sheetGrid is one worksheet as a rectangular grid of trimmed cell values,
// merged cells filled with their anchor value.
type sheetGrid struct {
	Name string
	Rows [][]string
}

// loadWorkbook decodes the uploaded bytes into one grid per sheet, in
// workbook order.
func loadWorkbook(file []byte) ([]sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []sheetGrid
	for _, name := range f.GetSheetList() {
		grid, err := filledGrid(f, name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets = append(sheets, sheetGrid{Name: name, Rows: grid})
	}
	return sheets, nil
}

// filledGrid reads a sheet into a rectangular grid. Cell values are trimmed
// and every cell of a merged range receives the range's value, so label/value
// layouts survive merged headers.
func filledGrid(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make([][]string, len(rows))
	for i := range grid {
		grid[i] = make([]string, maxCol)
		for j, cell := range rows[i] {
			grid[i][j] = strings.TrimSpace(cell)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	for _, merge := range merges {
		val := strings.TrimSpace(merge.GetCellValue())
		r1, c1, r2, c2, ok := mergeBounds(merge)
		if !ok {
			continue
		}
		for r := r1; r <= r2 && r < len(grid); r++ {
			for c := c1; c <= c2 && c < len(grid[r]); c++ {
				grid[r][c] = val
			}
		}
	}

	return grid, nil
}

func mergeBounds(merge excelize.MergeCell) (r1, c1, r2, c2 int, ok bool) {
	start := merge.GetStartAxis()
	end := merge.GetEndAxis()
	sc, sr, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	ec, er, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	return sr - 1, sc - 1, er - 1, ec - 1, true
}

// headerRowIndex finds the first row carrying at least three non-empty cells,
// which in practice is the table header of a soupis sheet.
func headerRowIndex(grid [][]string) int {
	for i, row := range grid {
		nonEmpty := 0
		for _, cell := range row {
			if cell != "" {
				nonEmpty++
			}
		}
		if nonEmpty >= 3 {
			return i
		}
	}
	return -1
}

// buildRawRows converts the selected sheet into the pipeline row model.
// Labels come from the detected header row; columns without a header keep a
// positional label so order-preserving access still works.
func buildRawRows(sheet sheetGrid) []app.RawRow {
	header := headerRowIndex(sheet.Rows)
	if header < 0 {
		return nil
	}

	labels := make([]string, len(sheet.Rows[header]))
	for i, l := range sheet.Rows[header] {
		if l == "" {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				name = fmt.Sprintf("#%d", i+1)
			}
			l = name
		}
		labels[i] = l
	}

	var out []app.RawRow
	for _, row := range sheet.Rows[header+1:] {
		r := app.RawRow{Labels: labels, Values: row}
		if r.Empty() {
			continue
		}
		out = append(out, r)
	}
	return out
}
