package app

// Subtype classifies a work position into one of the four concrete work kinds.
type Subtype string

const (
	SubtypeBeton   Subtype = "beton"
	SubtypeBedneni Subtype = "bednění"
	SubtypeVyztuz  Subtype = "výztuž"
	SubtypeJine    Subtype = "jiné"
)

func (s Subtype) String() string {
	return string(s)
}

func (s Subtype) IsValid() bool {
	switch s {
	case SubtypeBeton, SubtypeBedneni, SubtypeVyztuz, SubtypeJine:
		return true
	default:
		return false
	}
}

// Source records which pipeline stage produced a position.
type Source string

const (
	SourceCore        Source = "CORE"
	SourceLocalScoped Source = "LOCAL_SCOPED"
	SourceLocalGlobal Source = "LOCAL_GLOBAL"
	SourceTemplate    Source = "TEMPLATE"
)

func (s Source) String() string {
	return string(s)
}

// RawRow is one spreadsheet row: column labels paired with cell values,
// order preserved. Labels are shared across the rows of one sheet.
type RawRow struct {
	Labels []string `json:"labels"`
	Values []string `json:"values"`
}

// Get returns the value under the given column label, or "".
func (r RawRow) Get(label string) string {
	for i, l := range r.Labels {
		if l == label && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return ""
}

// Cell returns the value at column index i, or "".
func (r RawRow) Cell(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

func (r RawRow) Empty() bool {
	for _, v := range r.Values {
		if v != "" {
			return false
		}
	}
	return true
}

// FileMetadata carries the free-form project labels scanned from the top of
// the selected sheet. Each field stays empty when no label was found.
type FileMetadata struct {
	Stavba string `json:"stavba,omitempty"`
	Objekt string `json:"objekt,omitempty"`
	Soupis string `json:"soupis,omitempty"`
}

// ExtractedPosition is the canonical output unit of the pipeline.
type ExtractedPosition struct {
	PartName      string   `json:"part_name"`
	ItemName      string   `json:"item_name"`
	Subtype       Subtype  `json:"subtype"`
	Unit          string   `json:"unit"`
	Qty           float64  `json:"qty"`
	ConcreteM3    *float64 `json:"concrete_m3,omitempty"`
	OtskpCode     string   `json:"otskp_code,omitempty"`
	ConcreteGrade string   `json:"concrete_grade,omitempty"`
	Source        Source   `json:"source"`
}

// ResolutionResult is the outcome of one resolution round: which stage won
// and the normalized positions it produced.
type ResolutionResult struct {
	Metadata  FileMetadata        `json:"metadata"`
	Source    Source              `json:"resolution_source"`
	Positions []ExtractedPosition `json:"positions"`
}
