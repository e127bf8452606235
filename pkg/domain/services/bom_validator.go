package services

import (
	"fmt"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// BOMValidator checks BOM definitions against the product catalog
type BOMValidator struct {
	resolver *ProductResolver
}

// NewBOMValidator creates a validator bound to a catalog
func NewBOMValidator(resolver *ProductResolver) *BOMValidator {
	return &BOMValidator{resolver: resolver}
}

// ValidationResult contains the results of BOM validation.
// Errors describe structurally broken definitions; warnings describe
// definitions that analysis can still process with degraded output.
type ValidationResult struct {
	DuplicateBOMIDs   []string
	UnresolvedParents []string
	UnknownComponents map[string][]string
	Errors            []string
	Warnings          []string
}

// IsValid reports whether no structural errors were found
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateBOMs performs validation on a set of BOM definitions
func (v *BOMValidator) ValidateBOMs(boms []entities.BOMDefinition) *ValidationResult {
	result := &ValidationResult{
		DuplicateBOMIDs:   make([]string, 0),
		UnresolvedParents: make([]string, 0),
		UnknownComponents: make(map[string][]string),
		Errors:            make([]string, 0),
		Warnings:          make([]string, 0),
	}

	seen := make(map[string]bool, len(boms))
	for _, bom := range boms {
		if seen[bom.ID] {
			result.DuplicateBOMIDs = append(result.DuplicateBOMIDs, bom.ID)
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate BOM id: %s", bom.ID))
			continue
		}
		seen[bom.ID] = true

		v.validateDefinition(bom, result)
	}

	return result
}

func (v *BOMValidator) validateDefinition(bom entities.BOMDefinition, result *ValidationResult) {
	parent, err := v.resolver.Resolve(bom.ParentRef())
	if err != nil {
		result.UnresolvedParents = append(result.UnresolvedParents, bom.ID)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("BOM %s: parent product %s not found in catalog", bom.ID, bom.ParentRef()))
	}

	components := make(map[string]bool, len(bom.Components))
	for _, component := range bom.Components {
		if components[component.ProductID] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("BOM %s: component %s listed more than once", bom.ID, component.ProductID))
		}
		components[component.ProductID] = true

		if !component.QuantityPerUnit.IsPositive() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("BOM %s: component %s has non-positive quantity %s",
					bom.ID, component.ProductID, component.QuantityPerUnit))
		}

		if parent != nil && component.ProductID == parent.ID {
			result.Errors = append(result.Errors,
				fmt.Sprintf("BOM %s: parent product %s lists itself as a component", bom.ID, parent.ID))
		}

		if _, err := v.resolver.ResolveID(component.ProductID); err != nil {
			result.UnknownComponents[bom.ID] = append(result.UnknownComponents[bom.ID], component.ProductID)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("BOM %s: component %s not found in catalog", bom.ID, component.ProductID))
		}
	}
}
