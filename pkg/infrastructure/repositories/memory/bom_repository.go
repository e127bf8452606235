package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
)

// BOMRepository provides in-memory BOM definition storage
type BOMRepository struct {
	mu      sync.RWMutex
	boms    []entities.BOMDefinition
	bomsMap map[string]int
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedBOMs int) *BOMRepository {
	return &BOMRepository{
		boms:    make([]entities.BOMDefinition, 0, expectedBOMs),
		bomsMap: make(map[string]int, expectedBOMs),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMs loads BOM definitions. A repeated id keeps the first definition.
func (r *BOMRepository) LoadBOMs(boms []*entities.BOMDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, bom := range boms {
		if bom == nil {
			continue
		}
		if _, exists := r.bomsMap[bom.ID]; exists {
			continue
		}
		stored := *bom
		stored.Components = append([]entities.BOMComponent(nil), bom.Components...)
		r.bomsMap[bom.ID] = len(r.boms)
		r.boms = append(r.boms, stored)
	}
	return nil
}

// GetBOM returns the BOM definition with the given id
func (r *BOMRepository) GetBOM(id string) (*entities.BOMDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.bomsMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrBOMNotFound, id)
	}
	bom := r.boms[index]
	return &bom, nil
}

// GetAllBOMs returns all BOM definitions in load order
func (r *BOMRepository) GetAllBOMs() ([]*entities.BOMDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boms := make([]*entities.BOMDefinition, 0, len(r.boms))
	for i := range r.boms {
		bom := r.boms[i]
		boms = append(boms, &bom)
	}
	return boms, nil
}
