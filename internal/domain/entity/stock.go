package entity

import "time"

// StockEntry cantidad en existencia por (artículo, ubicación); la fuente de
// verdad del inventario. La ausencia de fila significa cantidad 0. Puede ser
// negativa transitoriamente (otpremnica contabilizada antes que su primka).
// Solo el motor de contabilización escribe esta tabla.
type StockEntry struct {
	ItemID     string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}

// StockView fila de stock unida con artículo y ubicación para listados.
type StockView struct {
	StockEntry
	Item     Item
	Location Location
}
