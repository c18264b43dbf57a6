package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). La tabla stock tiene clave compuesta (item_id, location_id);
// la ausencia de fila significa cantidad 0.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ApplyDelta aplica la política sobre la fila (itemID, locationID) con un solo
// upsert atómico, de modo que contabilizaciones concurrentes de documentos
// distintos sobre el mismo par no pierdan actualizaciones.
func (r *StockRepo) ApplyDelta(ctx context.Context, itemID, locationID string, policy entity.StockPolicy, amount int64) error {
	var query string
	value := amount
	switch policy {
	case entity.PolicyIncrement, entity.PolicyDecrement:
		// Delta con signo: la fila nueva nace con el delta, la existente lo acumula.
		if policy == entity.PolicyDecrement {
			value = -amount
		}
		query = `
			INSERT INTO stock (item_id, location_id, quantity, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (item_id, location_id)
			DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	case entity.PolicySet:
		query = `
			INSERT INTO stock (item_id, location_id, quantity, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (item_id, location_id)
			DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	default:
		return domain.ErrInvalidInput
	}

	_, err := r.q.Exec(ctx, query, itemID, locationID, value)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// Get obtiene la fila de stock; cantidad 0 si el par nunca fue tocado.
func (r *StockRepo) Get(ctx context.Context, itemID, locationID string) (*entity.StockEntry, error) {
	query := `
		SELECT item_id, location_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND location_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, itemID, locationID).Scan(
		&s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ItemID: itemID, LocationID: locationID, Quantity: 0, UpdatedAt: time.Time{}}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// List devuelve el stock unido con artículo y ubicación, ordenado por
// ubicación y artículo. q filtra por sku, nombre o código de barras.
func (r *StockRepo) List(ctx context.Context, q string) ([]*entity.StockView, error) {
	query := `
		SELECT s.item_id, s.location_id, s.quantity, s.updated_at,
		       i.id, i.sku, i.name, i.unit, i.barcode, i.min_stock, i.image_url, i.created_at, i.updated_at,
		       l.id, l.code, l.description, l.created_at
		FROM stock s
		JOIN items i ON i.id = s.item_id
		JOIN locations l ON l.id = s.location_id`
	args := []any{}
	if q != "" {
		query += `
		WHERE i.sku ILIKE $1 OR i.name ILIKE $1 OR i.barcode ILIKE $1`
		args = append(args, "%"+q+"%")
	}
	query += `
		ORDER BY l.code, i.sku`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockView
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(
			&v.ItemID, &v.LocationID, &v.Quantity, &v.UpdatedAt,
			&v.Item.ID, &v.Item.SKU, &v.Item.Name, &v.Item.Unit, &v.Item.Barcode,
			&v.Item.MinStock, &v.Item.ImageURL, &v.Item.CreatedAt, &v.Item.UpdatedAt,
			&v.Location.ID, &v.Location.Code, &v.Location.Description, &v.Location.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
