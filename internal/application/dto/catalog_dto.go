package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemRequest body para crear/actualizar un artículo.
type ItemRequest struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Barcode  *string `json:"barcode,omitempty"`
	MinStock *int64  `json:"minStock,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// ItemResponse artículo serializado.
type ItemResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Barcode   *string   `json:"barcode,omitempty"`
	MinStock  *int64    `json:"minStock,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToItemResponse mapea la entidad al DTO.
func ToItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID: i.ID, SKU: i.SKU, Name: i.Name, Unit: i.Unit,
		Barcode: i.Barcode, MinStock: i.MinStock, ImageURL: i.ImageURL,
		CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

// LocationRequest body para crear una ubicación.
type LocationRequest struct {
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

// LocationResponse ubicación serializada.
type LocationResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToLocationResponse mapea la entidad al DTO.
func ToLocationResponse(l *entity.Location) *LocationResponse {
	if l == nil {
		return nil
	}
	return &LocationResponse{ID: l.ID, Code: l.Code, Description: l.Description, CreatedAt: l.CreatedAt}
}

// StockRowResponse fila del listado de stock unida con artículo y ubicación.
type StockRowResponse struct {
	ItemID     string           `json:"itemId"`
	LocationID string           `json:"locationId"`
	Quantity   int64            `json:"quantity"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Item       ItemResponse     `json:"item"`
	Location   LocationResponse `json:"location"`
}

// ToStockRowResponse mapea la vista de stock al DTO.
func ToStockRowResponse(v *entity.StockView) *StockRowResponse {
	if v == nil {
		return nil
	}
	return &StockRowResponse{
		ItemID:     v.ItemID,
		LocationID: v.LocationID,
		Quantity:   v.Quantity,
		UpdatedAt:  v.UpdatedAt,
		Item:       *ToItemResponse(&v.Item),
		Location:   *ToLocationResponse(&v.Location),
	}
}
