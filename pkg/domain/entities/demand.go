package entities

import (
	"fmt"
	"strings"
)

// SourceType identifies the kind of record a demand originated from
type SourceType int

const (
	SourceSale SourceType = iota
	SourceQuote
)

// String method for SourceType enum
func (t SourceType) String() string {
	switch t {
	case SourceSale:
		return "SALE"
	case SourceQuote:
		return "QUOTE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (t SourceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *SourceType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "SALE":
		*t = SourceSale
	case "QUOTE":
		*t = SourceQuote
	default:
		return fmt.Errorf("invalid source type: %s", text)
	}
	return nil
}

// SourceMode restricts which demand sources take part in an analysis
type SourceMode int

const (
	ModeBoth SourceMode = iota
	ModeSalesOnly
	ModeQuotesOnly
)

// String method for SourceMode enum
func (m SourceMode) String() string {
	switch m {
	case ModeBoth:
		return "BOTH"
	case ModeSalesOnly:
		return "SALES_ONLY"
	case ModeQuotesOnly:
		return "QUOTES_ONLY"
	default:
		return "UNKNOWN"
	}
}

// ParseSourceMode parses a mode name; blank input means BOTH
func ParseSourceMode(s string) (SourceMode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case "", "BOTH":
		return ModeBoth, nil
	case "SALES_ONLY", "SALES":
		return ModeSalesOnly, nil
	case "QUOTES_ONLY", "QUOTES":
		return ModeQuotesOnly, nil
	default:
		return ModeBoth, fmt.Errorf("invalid source mode: %s (expected BOTH, SALES_ONLY or QUOTES_ONLY)", s)
	}
}

// IncludesSales reports whether sales orders take part under this mode
func (m SourceMode) IncludesSales() bool {
	return m != ModeQuotesOnly
}

// IncludesQuotes reports whether quotations take part under this mode
func (m SourceMode) IncludesQuotes() bool {
	return m != ModeSalesOnly
}

// MarshalText implements encoding.TextMarshaler
func (m SourceMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *SourceMode) UnmarshalText(text []byte) error {
	mode, err := ParseSourceMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Selection is the caller's explicit choice of demand sources
type Selection struct {
	SaleIDs      []string   `json:"sale_ids" yaml:"sales"`
	QuotationIDs []string   `json:"quotation_ids" yaml:"quotations"`
	Mode         SourceMode `json:"mode" yaml:"-"`
}

// IsEmpty reports whether no source remains selected once the mode is applied
func (s Selection) IsEmpty() bool {
	sales := s.Mode.IncludesSales() && len(s.SaleIDs) > 0
	quotes := s.Mode.IncludesQuotes() && len(s.QuotationIDs) > 0
	return !sales && !quotes
}

// DemandSource is a sale or quotation line normalized into one shape
type DemandSource struct {
	Type     SourceType
	SourceID string
	Label    string
	Material ProductRef
	Quantity Quantity
	IsBOM    bool
	BOMID    string
}

// Provenance records one source's contribution to a demand line
type Provenance struct {
	Type     SourceType `json:"type"`
	SourceID string     `json:"source_id"`
	Label    string     `json:"label"`
	Quantity Quantity   `json:"quantity"`
}

// DemandLine is the aggregated need for one material. BOM parents carry
// exactly one level of children; children never nest further.
type DemandLine struct {
	MaterialID   string       `json:"material_id"`
	MaterialName string       `json:"material_name"`
	MaterialCode string       `json:"material_code"`
	Unit         string       `json:"unit,omitempty"`
	Needed       Quantity     `json:"needed"`
	Sources      []Provenance `json:"sources"`
	IsBOMParent  bool         `json:"is_bom_parent"`
	IsBOMChild   bool         `json:"is_bom_child"`
	BOMID        string       `json:"bom_id,omitempty"`
	Resolved     bool         `json:"resolved"`
	Children     []DemandLine `json:"children,omitempty"`
}
