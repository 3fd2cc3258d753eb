package reference

import "time"

// RefDTO is the transport shape shared by departments, sites and regions.
type RefDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRefInput names a new lookup entry.
type CreateRefInput struct {
	Name string `json:"name" validate:"required"`
}
