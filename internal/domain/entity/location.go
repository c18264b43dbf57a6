package entity

import "time"

// Location ubicación física de la bodega (estantería, pasillo, zona).
type Location struct {
	ID          string
	Code        string // único
	Description *string
	CreatedAt   time.Time
}
