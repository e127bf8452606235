package entities

import (
	"fmt"
	"strings"
)

// OrderType represents how a shortage is remedied
type OrderType int

const (
	Make OrderType = iota
	Buy
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case Make:
		return "Make"
	case Buy:
		return "Buy"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (o OrderType) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Wording returns the noun used in recommendation messages
func (o OrderType) Wording() string {
	if o == Make {
		return "production"
	}
	return "procurement"
}

// ActionType is the token a caller maps onto a follow-up flow
type ActionType int

const (
	ActionOpenProduction ActionType = iota
	ActionOpenPurchasing
	ActionOpenWorkOrder
)

// String method for ActionType enum
func (a ActionType) String() string {
	switch a {
	case ActionOpenProduction:
		return "OPEN_PRODUCTION"
	case ActionOpenPurchasing:
		return "OPEN_PURCHASING"
	case ActionOpenWorkOrder:
		return "OPEN_WORK_ORDER"
	default:
		return "UNKNOWN"
	}
}

// ParseActionType parses an action token
func ParseActionType(s string) (ActionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OPEN_PRODUCTION":
		return ActionOpenProduction, nil
	case "OPEN_PURCHASING":
		return ActionOpenPurchasing, nil
	case "OPEN_WORK_ORDER":
		return ActionOpenWorkOrder, nil
	default:
		return ActionOpenPurchasing, fmt.Errorf("invalid action type: %s", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ActionType) UnmarshalText(text []byte) error {
	action, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// Action is a remediation descriptor. Only production actions carry a BOM and quantity.
type Action struct {
	Type     ActionType `json:"type"`
	BOMID    string     `json:"bom_id,omitempty"`
	Quantity Quantity   `json:"quantity"`
}

// Recommendation is human-readable guidance for one shortage row
type Recommendation struct {
	MaterialID   string       `json:"material_id"`
	MaterialName string       `json:"material_name"`
	MaterialCode string       `json:"material_code"`
	Quantity     Quantity     `json:"quantity"`
	OrderType    OrderType    `json:"order_type"`
	Message      string       `json:"message"`
	Actions      []Action     `json:"actions"`
	Sources      []Provenance `json:"sources"`
	IsBOMChild   bool         `json:"is_bom_child"`
	BOMID        string       `json:"bom_id,omitempty"`
}
