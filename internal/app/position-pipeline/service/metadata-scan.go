package position_pipeline_service

import (
	"log/slog"
	"strings"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// Label variants per metadata key, folded form.
var metadataLabels = map[string][]string{
	"stavba": {"stavba", "nazev stavby", "construction", "akce"},
	"objekt": {"objekt", "nazev objektu", "object", "stavebni objekt"},
	"soupis": {"soupis", "nazev soupisu", "soupis praci", "list"},
}

// labelMatches reports whether the cell is exactly one of the key's label
// variants, with or without a trailing colon.
func labelMatches(cell, key string) bool {
	folded := strings.TrimSuffix(normalizeText(cell), ":")
	for _, variant := range metadataLabels[key] {
		if folded == variant {
			return true
		}
	}
	return false
}

// inlineValue handles "<label>: <value>" packed into one cell.
func inlineValue(cell, key string) string {
	idx := strings.Index(cell, ":")
	if idx < 0 {
		return ""
	}
	if !labelMatches(cell[:idx], key) {
		return ""
	}
	return strings.TrimSpace(cell[idx+1:])
}

// isAnyLabel guards the next-row heuristic against reading another label
// word as a value.
func isAnyLabel(cell string) bool {
	for key := range metadataLabels {
		if labelMatches(cell, key) {
			return true
		}
	}
	return false
}

// scanMetadata scans the first maxRows rows of the sheet for the three
// project labels. Per key, the first layout heuristic that matches wins and
// the key is never overwritten within the scan:
//
//	(a) label cell, value in the next non-empty column of the same row
//	(b) "<label>: <value>" inline in one cell
//	(c) label cell, value in the same column of the next row
func scanMetadata(grid [][]string, maxRows int, log *slog.Logger) app.FileMetadata {
	found := map[string]string{}

	set := func(key, value string) {
		value = strings.TrimSpace(value)
		if value == "" || found[key] != "" {
			return
		}
		found[key] = value
	}

	limit := maxRows
	if limit > len(grid) {
		limit = len(grid)
	}

	for r := 0; r < limit; r++ {
		for c, cell := range grid[r] {
			if cell == "" {
				continue
			}
			for key := range metadataLabels {
				if found[key] != "" {
					continue
				}
				if v := inlineValue(cell, key); v != "" {
					set(key, v)
					continue
				}
				if !labelMatches(cell, key) {
					continue
				}
				// same row, next non-empty column
				for cc := c + 1; cc < len(grid[r]); cc++ {
					if grid[r][cc] != "" {
						set(key, grid[r][cc])
						break
					}
				}
				if found[key] != "" {
					continue
				}
				// next row, same column position
				if r+1 < len(grid) && c < len(grid[r+1]) {
					below := grid[r+1][c]
					if below != "" && !isAnyLabel(below) {
						set(key, below)
					}
				}
			}
		}
	}

	meta := app.FileMetadata{
		Stavba: found["stavba"],
		Objekt: found["objekt"],
		Soupis: found["soupis"],
	}
	if meta == (app.FileMetadata{}) {
		log.Info("no project metadata found in sheet header")
	}
	return meta
}
