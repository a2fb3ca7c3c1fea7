package position_pipeline_service

import (
	"errors"
	"log/slog"
	"regexp"
)

// ErrEmptyWorkbook is fatal: the workbook has no sheets at all.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// preferredSheetName matches the language variants of "work list / budget /
// items"; a match is worth a flat bonus over pure data-row count.
var preferredSheetName = regexp.MustCompile(`(?i)soupis|v[yý]kaz\s*v[yý]m[eě]r|rozpo[cč]et|budget|bill\s*of\s*quantities|\bboq\b|polo[zž]|items`)

// recapSheetName marks summary/recap side sheets, excluded before scoring.
var recapSheetName = regexp.MustCompile(`(?i)rekapitulace|recap|souhrn|summary`)

const preferredNameBonus = 1000

func dataRowCount(sheet sheetGrid) int {
	n := 0
	for _, row := range sheet.Rows {
		for _, cell := range row {
			if cell != "" {
				n++
				break
			}
		}
	}
	return n
}

// selectSheet scores every non-recap sheet as dataRows + name bonus and picks
// the highest. Only a strictly greater score replaces the current best, so
// equal scores resolve to the earliest sheet index. When no sheet carries any
// data, the first sheet is returned with a warning rather than failing.
func selectSheet(sheets []sheetGrid, log *slog.Logger) (sheetGrid, error) {
	if len(sheets) == 0 {
		return sheetGrid{}, ErrEmptyWorkbook
	}

	best := -1
	bestScore := 0
	for i, sheet := range sheets {
		if recapSheetName.MatchString(sheet.Name) {
			log.Debug("sheet excluded as recap", "sheet", sheet.Name)
			continue
		}
		score := dataRowCount(sheet)
		if score == 0 {
			continue
		}
		if preferredSheetName.MatchString(sheet.Name) {
			score += preferredNameBonus
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		log.Warn("no sheet with data rows, falling back to first sheet", "sheet", sheets[0].Name)
		return sheets[0], nil
	}

	log.Info("sheet selected", "sheet", sheets[best].Name, "score", bestScore)
	return sheets[best], nil
}
