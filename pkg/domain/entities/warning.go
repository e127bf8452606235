package entities

// WarningCode classifies a data-integrity problem met during analysis
type WarningCode int

const (
	WarningSourceNotFound WarningCode = iota
	WarningBOMNotFound
	WarningBOMParentUnresolved
	WarningComponentUnresolved
	WarningMaterialUnresolved
)

// String method for WarningCode enum
func (c WarningCode) String() string {
	switch c {
	case WarningSourceNotFound:
		return "SOURCE_NOT_FOUND"
	case WarningBOMNotFound:
		return "BOM_NOT_FOUND"
	case WarningBOMParentUnresolved:
		return "BOM_PARENT_UNRESOLVED"
	case WarningComponentUnresolved:
		return "COMPONENT_UNRESOLVED"
	case WarningMaterialUnresolved:
		return "MATERIAL_UNRESOLVED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c WarningCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Warning is a soft failure; the analysis still completes
type Warning struct {
	Code     WarningCode `json:"code"`
	SourceID string      `json:"source_id,omitempty"`
	BOMID    string      `json:"bom_id,omitempty"`
	Message  string      `json:"message"`
}
