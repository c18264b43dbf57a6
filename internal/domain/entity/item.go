package entity

import "time"

// Item artículo del catálogo. El ledger lo referencia por ID desde las
// líneas de documento y nunca lo muta.
type Item struct {
	ID        string
	SKU       string // único
	Name      string
	Unit      string // ej. "pcs", "kg"
	Barcode   *string
	MinStock  *int64 // umbral de stock mínimo opcional
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
