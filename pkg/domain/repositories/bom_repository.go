package repositories

import "github.com/vsinha/mrpanalysis/pkg/domain/entities"

// BOMRepository provides access to Bill of Materials definitions
type BOMRepository interface {
	GetBOM(id string) (*entities.BOMDefinition, error)
	GetAllBOMs() ([]*entities.BOMDefinition, error)
	LoadBOMs(boms []*entities.BOMDefinition) error
}
