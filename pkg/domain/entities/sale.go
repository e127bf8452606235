package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus represents the fulfilment state of a sales order
type SaleStatus int

const (
	SalePending SaleStatus = iota
	SaleShipped
	SaleCancelled
)

// String method for SaleStatus enum
func (s SaleStatus) String() string {
	switch s {
	case SalePending:
		return "pending"
	case SaleShipped:
		return "shipped"
	case SaleCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseSaleStatus parses a sale status; blank input means pending
func ParseSaleStatus(s string) (SaleStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending", "open":
		return SalePending, nil
	case "shipped", "delivered":
		return SaleShipped, nil
	case "cancelled", "canceled":
		return SaleCancelled, nil
	default:
		return SalePending, fmt.Errorf("invalid sale status: %s (expected pending, shipped or cancelled)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s SaleStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *SaleStatus) UnmarshalText(text []byte) error {
	status, err := ParseSaleStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Sale represents a single-line sales order. Composite sales reference a BOM
// and are planned through BOM explosion rather than direct demand.
type Sale struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customer_name"`
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name,omitempty"`
	ProductCode  string     `json:"product_code,omitempty"`
	Quantity     Quantity   `json:"quantity"`
	UnitPrice    Money      `json:"unit_price"`
	IsBOMProduct bool       `json:"is_bom_product"`
	BOMID        string     `json:"bom_id,omitempty"`
	Status       SaleStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsBOMBacked reports whether the sale must be planned through BOM explosion
func (s Sale) IsBOMBacked() bool {
	return s.IsBOMProduct && strings.TrimSpace(s.BOMID) != ""
}

// IsActive reports whether the sale still represents outstanding demand
func (s Sale) IsActive() bool {
	return s.Status == SalePending
}

// QuotationStatus represents the lifecycle state of a price quotation
type QuotationStatus int

const (
	QuotationDraft QuotationStatus = iota
	QuotationSent
	QuotationApproved
	QuotationRejected
	QuotationConverted
)

// String method for QuotationStatus enum
func (s QuotationStatus) String() string {
	switch s {
	case QuotationDraft:
		return "draft"
	case QuotationSent:
		return "sent"
	case QuotationApproved:
		return "approved"
	case QuotationRejected:
		return "rejected"
	case QuotationConverted:
		return "converted"
	default:
		return "unknown"
	}
}

// ParseQuotationStatus parses a quotation status; blank input means draft
func ParseQuotationStatus(s string) (QuotationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "draft":
		return QuotationDraft, nil
	case "sent":
		return QuotationSent, nil
	case "approved", "accepted":
		return QuotationApproved, nil
	case "rejected":
		return QuotationRejected, nil
	case "converted":
		return QuotationConverted, nil
	default:
		return QuotationDraft, fmt.Errorf("invalid quotation status: %s (expected draft, sent, approved, rejected or converted)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s QuotationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *QuotationStatus) UnmarshalText(text []byte) error {
	status, err := ParseQuotationStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// QuotationItem is one independently quoted material line
type QuotationItem struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name,omitempty"`
	ProductCode string   `json:"product_code,omitempty"`
	Quantity    Quantity `json:"quantity"`
	UnitPrice   Money    `json:"unit_price"`
}

// Quotation represents a price quotation with any number of line items
type Quotation struct {
	ID           string          `json:"id"`
	Number       string          `json:"number,omitempty"`
	CustomerName string          `json:"customer_name"`
	Status       QuotationStatus `json:"status"`
	Items        []QuotationItem `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsActive reports whether the quotation may still turn into demand
func (q Quotation) IsActive() bool {
	return q.Status == QuotationDraft || q.Status == QuotationApproved
}

// Total returns the quoted value of all items
func (q Quotation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(item.UnitPrice.Decimal().Mul(item.Quantity.Decimal()))
	}
	return total
}
