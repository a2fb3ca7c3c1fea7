package position_pipeline_service

import (
	"regexp"
	"strings"

	"github.com/init-pkg/soupis-parser/domain/app"
)

// Language-agnostic pattern tables for the local heuristics. All matching
// runs over normalizeText output (lowercase, diacritics folded), so the
// tables list folded forms only.

// concreteKeywords marks a description as concrete work.
var concreteKeywords = []string{
	"beton",
	"zaklad",    // foundations
	"pilir",     // piers
	"opera",     // abutments
	"drik",      // pier shafts
	"ulozny prah",
	"mostovka",
	"rimsa",
	"vyztuz", // reinforcement
	"armatur",
	"bedneni", // formwork
	"odvodneni", "drenaz", // drainage
	"zapor", "piloty",
	"concrete",
	"reinforcement",
	"formwork",
	"foundation",
	"abutment",
}

// precastKeywords exclude a row even when a concrete keyword matches.
var precastKeywords = []string{
	"prefa",
	"prefabrik",
	"precast",
	"dilec",
}

type unitKind int

const (
	unitUnknown unitKind = iota
	unitVolume
	unitArea
	unitMass
	unitLength
	unitPiece
)

var unitKinds = map[string]unitKind{
	"m3":  unitVolume,
	"m³":  unitVolume,
	"m2":  unitArea,
	"m²":  unitArea,
	"kg":  unitMass,
	"t":   unitMass,
	"m":   unitLength,
	"bm":  unitLength,
	"ks":  unitPiece,
	"kus": unitPiece,
	"pcs": unitPiece,
}

// classifyUnit resolves a unit-of-measure cell to its kind. Tolerates
// spacing and case ("M 3", "m3 "), not free text.
func classifyUnit(unit string) unitKind {
	u := strings.ToLower(strings.ReplaceAll(unit, " ", ""))
	u = strings.Trim(u, ".")
	if k, ok := unitKinds[u]; ok {
		return k
	}
	return unitUnknown
}

// Standard grades C12/15 .. C100/115, optional L prefix for lightweight,
// whitespace-tolerant ("C 30 / 37"). UHPC grades are C110..C170.
var (
	gradeRe = regexp.MustCompile(`(?i)\bL?\s*C\s*\d{1,3}\s*/\s*\d{1,3}\b`)
	uhpcRe  = regexp.MustCompile(`(?i)\bC\s*1[1-7]0\b`)
)

// findGrade returns the first concrete-grade token in text, with internal
// whitespace stripped and letters uppercased ("C30/37", "LC25/28", "C110").
func findGrade(text string) string {
	m := gradeRe.FindString(text)
	if m == "" {
		m = uhpcRe.FindString(text)
	}
	if m == "" {
		return ""
	}
	return strings.ToUpper(strings.ReplaceAll(m, " ", ""))
}

// otskpCodeRe matches a national work-item classification code.
var otskpCodeRe = regexp.MustCompile(`\b\d{5,6}\b`)

func findOtskpCode(cells ...string) string {
	for _, c := range cells {
		if m := otskpCodeRe.FindString(c); m != "" {
			return m
		}
	}
	return ""
}

func hasKeyword(folded string, table []string) bool {
	for _, kw := range table {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// isConcreteWork combines the keyword and unit signals. Prefabricated
// elements are excluded regardless of the other signals.
func isConcreteWork(description, unit string) bool {
	folded := normalizeText(description)
	if hasKeyword(folded, precastKeywords) {
		return false
	}
	if hasKeyword(folded, concreteKeywords) {
		return true
	}
	switch classifyUnit(unit) {
	case unitVolume, unitArea, unitMass:
		return true
	}
	return false
}

// subtypeFor derives the position subtype. The unit takes precedence over the
// description text; keyword signals only apply when the unit is inconclusive.
func subtypeFor(description, unit string) app.Subtype {
	switch classifyUnit(unit) {
	case unitVolume:
		return app.SubtypeBeton
	case unitArea:
		return app.SubtypeBedneni
	case unitMass:
		return app.SubtypeVyztuz
	}

	folded := normalizeText(description)
	switch {
	case strings.Contains(folded, "bedneni") || strings.Contains(folded, "formwork"):
		return app.SubtypeBedneni
	case strings.Contains(folded, "vyztuz") || strings.Contains(folded, "armatur") || strings.Contains(folded, "reinforcement"):
		return app.SubtypeVyztuz
	case strings.Contains(folded, "odvodneni") || strings.Contains(folded, "drenaz"):
		return app.SubtypeJine
	}
	return app.SubtypeBeton
}
