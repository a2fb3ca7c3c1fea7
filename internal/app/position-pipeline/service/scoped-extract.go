package position_pipeline_service

import (
	"regexp"
	"strings"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// groupHeaderRe matches construction-object group header cells ("SO 201",
// "SO201.1").
var groupHeaderRe = regexp.MustCompile(`(?i)^so\s*[\d.]+`)

// groupRange locates the contiguous row range belonging to groupID: it
// starts at the first row mentioning the identifier and stops right before
// the next differing group header. Returns (0, len(rows)) when groupID is
// empty or never found — the auto-detect all-rows mode.
func groupRange(rows []app.RawRow, groupID string) (int, int) {
	if strings.TrimSpace(groupID) == "" {
		return 0, len(rows)
	}
	wanted := normalizeText(groupID)

	start := -1
	for i, row := range rows {
		for _, cell := range row.Values {
			if cell != "" && strings.Contains(normalizeText(cell), wanted) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0, len(rows)
	}

	end := len(rows)
	for i := start + 1; i < len(rows); i++ {
		for _, cell := range rows[i].Values {
			if cell == "" {
				continue
			}
			if groupHeaderRe.MatchString(cell) && !strings.Contains(normalizeText(cell), wanted) {
				end = i
			}
			break
		}
		if end != len(rows) {
			break
		}
	}
	return start, end
}

// longestTextCell is the description fallback for sheets where no header
// column could be resolved.
func longestTextCell(row app.RawRow) string {
	best := ""
	for _, cell := range row.Values {
		if _, numeric := parseLocaleFloat(cell); numeric {
			continue
		}
		if len(cell) > len(best) {
			best = cell
		}
	}
	return best
}

// extractScoped is the first local strategy: classify rows of the target
// group (or all rows) as concrete work by keyword and unit signals, using
// fuzzily resolved logical columns. Pure; safe to call repeatedly.
func extractScoped(rows []app.RawRow, partName, groupID string) []app.ExtractedPosition {
	if len(rows) == 0 {
		return nil
	}

	cols := resolveColumns(rows[0].Labels)
	start, end := groupRange(rows, groupID)

	var out []app.ExtractedPosition
	for _, row := range rows[start:end] {
		desc := row.Cell(cols.Description)
		if desc == "" {
			desc = longestTextCell(row)
		}
		if desc == "" {
			continue
		}

		unit := row.Cell(cols.Unit)
		if !isConcreteWork(desc, unit) {
			continue
		}

		qty, ok := parseLocaleFloat(row.Cell(cols.Quantity))
		if !ok || qty <= 0 {
			continue
		}

		out = append(out, app.ExtractedPosition{
			PartName:      partName,
			ItemName:      desc,
			Subtype:       subtypeFor(desc, unit),
			Unit:          unit,
			Qty:           qty,
			OtskpCode:     findOtskpCode(row.Cell(cols.Code), desc),
			ConcreteGrade: findGrade(desc),
			Source:        app.SourceLocalScoped,
		})
	}
	return out
}
