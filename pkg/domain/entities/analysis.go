package entities

// CoverageStatus classifies how well stock covers a demand line
type CoverageStatus int

const (
	Sufficient CoverageStatus = iota
	Borderline
	Shortage
)

// String method for CoverageStatus enum
func (s CoverageStatus) String() string {
	switch s {
	case Sufficient:
		return "SUFFICIENT"
	case Borderline:
		return "BORDERLINE"
	case Shortage:
		return "SHORTAGE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s CoverageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusForDifference maps stock minus need onto the three coverage tiers.
// Exact coverage is Borderline, not Sufficient.
func StatusForDifference(difference Quantity) CoverageStatus {
	switch difference.Sign() {
	case 1:
		return Sufficient
	case 0:
		return Borderline
	default:
		return Shortage
	}
}

// AnalysisRow is a demand line reconciled against the stock snapshot
type AnalysisRow struct {
	MaterialID   string         `json:"material_id"`
	MaterialName string         `json:"material_name"`
	MaterialCode string         `json:"material_code"`
	Unit         string         `json:"unit,omitempty"`
	Needed       Quantity       `json:"needed"`
	Stock        Quantity       `json:"stock"`
	Difference   Quantity       `json:"difference"`
	Status       CoverageStatus `json:"status"`
	Sources      []Provenance   `json:"sources"`
	IsBOMParent  bool           `json:"is_bom_parent"`
	IsBOMChild   bool           `json:"is_bom_child"`
	BOMID        string         `json:"bom_id,omitempty"`
	Resolved     bool           `json:"resolved"`
	Children     []AnalysisRow  `json:"children,omitempty"`
}

// IsShortage reports whether stock falls short of need
func (r AnalysisRow) IsShortage() bool {
	return r.Status == Shortage
}

// Summary holds aggregate counts over top-level rows
type Summary struct {
	Total           int      `json:"total"`
	ShortageCount   int      `json:"shortage_count"`
	SufficientCount int      `json:"sufficient_count"`
	TotalNeeded     Quantity `json:"total_needed"`
}
