package position_pipeline_service

import "strings"

// logicalColumns maps the logical table fields onto column indexes of the
// selected sheet. -1 means the field has no column.
type logicalColumns struct {
	Code        int
	Description int
	Unit        int
	Quantity    int
	Price       int
}

// Header-name fragments per logical field, folded form. Headers in the wild
// mix Czech and English and abbreviate freely, so matching is by substring
// over normalizeText output rather than exact equality.
var columnPatterns = []struct {
	field     string
	fragments []string
}{
	{"code", []string{"kod", "cislo polozky", "polozka c", "otskp", "code", "item no"}},
	{"quantity", []string{"mnozstvi", "vymera", "pocet", "quantity", "qty", "amount"}},
	{"unit", []string{"mj", "m.j", "jednotka", "merna", "unit", "uom"}},
	{"price", []string{"cena", "sazba", "price", "kc"}},
	{"description", []string{"popis", "nazev", "polozka", "text", "description", "item"}},
}

// resolveColumns fuzzy-matches sheet header labels to logical fields. Fields
// are resolved in a fixed order and each column is claimed at most once, so
// "Položka" cannot serve as both code and description.
func resolveColumns(labels []string) logicalColumns {
	cols := logicalColumns{Code: -1, Description: -1, Unit: -1, Quantity: -1, Price: -1}
	claimed := make(map[int]bool, len(labels))

	folded := make([]string, len(labels))
	for i, l := range labels {
		folded[i] = normalizeText(l)
	}

	for _, p := range columnPatterns {
		idx := -1
		for i, label := range folded {
			if claimed[i] || label == "" {
				continue
			}
			for _, frag := range p.fragments {
				if strings.Contains(label, frag) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			continue
		}
		claimed[idx] = true
		switch p.field {
		case "code":
			cols.Code = idx
		case "description":
			cols.Description = idx
		case "unit":
			cols.Unit = idx
		case "quantity":
			cols.Quantity = idx
		case "price":
			cols.Price = idx
		}
	}

	return cols
}
