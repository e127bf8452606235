package entities

import "errors"

var (
	// ErrEmptySelection is returned when an analysis is requested with no demand sources selected
	ErrEmptySelection = errors.New("no sales orders or quotations selected for analysis")

	// ErrProductNotFound is returned when a product reference matches nothing in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrBOMNotFound is returned when a BOM id matches no registered definition
	ErrBOMNotFound = errors.New("bom not found")

	// ErrInvalidQuantity is returned when an action or order carries a non-positive quantity
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrWorkOrderNotFound is returned when a work order id is unknown
	ErrWorkOrderNotFound = errors.New("work order not found")
)
