package entity

import "time"

// Store representa una sede o local del restaurante donde se almacena inventario.
type Store struct {
	ID        string
	AccountID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
