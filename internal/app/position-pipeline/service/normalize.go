package position_pipeline_service

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// diacritic folding: NFD → strip combining marks → NFC
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases, folds diacritics and collapses whitespace.
// Used for dedup keys and for all keyword matching.
func normalizeText(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// parseLocaleFloat parses numbers as they appear in Czech spreadsheets:
// comma as decimal separator, embedded regular or non-breaking spaces as
// thousands grouping ("1 234,5").
func parseLocaleFloat(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

const minDescriptionLen = 3

// normalizePositions applies the final validation and dedup pass of one
// resolution round. Order is stable; the first position wins a dedup clash.
func normalizePositions(positions []app.ExtractedPosition) []app.ExtractedPosition {
	seen := make(map[string]struct{}, len(positions))
	out := make([]app.ExtractedPosition, 0, len(positions))

	for _, p := range positions {
		if p.Qty <= 0 {
			continue
		}
		if len([]rune(strings.TrimSpace(p.ItemName))) < minDescriptionLen {
			continue
		}
		key := normalizeText(p.ItemName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if !p.Subtype.IsValid() {
			p.Subtype = app.SubtypeJine
		}
		if p.ConcreteM3 == nil && classifyUnit(p.Unit) == unitVolume {
			qty := p.Qty
			p.ConcreteM3 = &qty
		}
		out = append(out, p)
	}

	return out
}
