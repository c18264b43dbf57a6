package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LocationRepository puerto de persistencia de ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByCode(ctx context.Context, code string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}
