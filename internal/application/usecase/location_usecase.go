package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// LocationUseCase alta y listado de ubicaciones de bodega.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create valida y persiste una ubicación. Código duplicado -> ErrDuplicate.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return dto.ToLocationResponse(location), nil
}

// List devuelve todas las ubicaciones, recientes primero.
func (uc *LocationUseCase) List(ctx context.Context) ([]*dto.LocationResponse, error) {
	locations, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.ToLocationResponse(l))
	}
	return out, nil
}
