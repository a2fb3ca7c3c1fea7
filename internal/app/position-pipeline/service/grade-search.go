package position_pipeline_service

import (
	"math"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// Quantity plausibility bounds for the global grade search. Small integers
// are usually row numbers, huge values are usually prices or totals.
const (
	gradeQtyMin    = 0.1
	gradeQtyMax    = 1_000_000
	rowIndexCutoff = 10 // integer values below this are treated as row indices
)

func plausibleQty(v float64) bool {
	if v < gradeQtyMin || v > gradeQtyMax {
		return false
	}
	if v == math.Trunc(v) && v < rowIndexCutoff {
		return false
	}
	return true
}

// rowQuantity picks the best quantity candidate among the row's cells,
// skipping the grade cell itself. A numeric cell co-occurring with an
// explicit volume-unit marker cell wins; otherwise the largest plausible
// value is taken. ok is false when the row has no plausible quantity.
func rowQuantity(cells []string, gradeCol int) (qty float64, withUnit bool, ok bool) {
	unitCol := -1
	for i, cell := range cells {
		if i == gradeCol {
			continue
		}
		if classifyUnit(cell) == unitVolume {
			unitCol = i
			break
		}
	}

	if unitCol >= 0 {
		// The unit marker vouches for the value, so only the hard bounds
		// apply here; the row-index guard is for the unmarked fallback.
		for _, i := range candidateOrder(len(cells), unitCol) {
			if i == gradeCol || i == unitCol {
				continue
			}
			if v, numeric := parseLocaleFloat(cells[i]); numeric && v > 0 && v <= gradeQtyMax {
				return v, true, true
			}
		}
	}

	best := 0.0
	found := false
	for i, cell := range cells {
		if i == gradeCol {
			continue
		}
		v, numeric := parseLocaleFloat(cell)
		if !numeric || !plausibleQty(v) {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, false, found
}

// candidateOrder visits cells starting right after pivot, wrapping around.
func candidateOrder(n, pivot int) []int {
	order := make([]int, 0, n)
	for i := pivot + 1; i < n; i++ {
		order = append(order, i)
	}
	for i := 0; i <= pivot && i < n; i++ {
		order = append(order, i)
	}
	return order
}

// searchGrades is the second local strategy: a global scan of every cell for
// a concrete-grade token, independent of any grouping. One position per
// matching row, first grade wins; rows without a plausible quantity are
// rejected. Pure; safe to call repeatedly.
func searchGrades(grid [][]string, partName string) []app.ExtractedPosition {
	var out []app.ExtractedPosition

	for _, row := range grid {
		grade := ""
		gradeCol := -1
		for c, cell := range row {
			if g := findGrade(cell); g != "" {
				grade = g
				gradeCol = c
				break
			}
		}
		if grade == "" {
			continue
		}

		qty, _, ok := rowQuantity(row, gradeCol)
		if !ok {
			continue
		}

		desc := longestTextCell(app.RawRow{Values: row})
		if desc == "" {
			desc = "Beton " + grade
		}

		out = append(out, app.ExtractedPosition{
			PartName:      partName,
			ItemName:      desc,
			Subtype:       app.SubtypeBeton,
			Unit:          "m3",
			Qty:           qty,
			OtskpCode:     findOtskpCode(row...),
			ConcreteGrade: grade,
			Source:        app.SourceLocalGlobal,
		})
	}
	return out
}
