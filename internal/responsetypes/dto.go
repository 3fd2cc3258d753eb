package responsetypes

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
)

// ResponseTypeDTO is the transport shape for a response type.
type ResponseTypeDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Types     []string  `json:"types"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateResponseTypeInput names a new response type with its ordered options.
type CreateResponseTypeInput struct {
	Name  string   `json:"name" validate:"required"`
	Types []string `json:"types" validate:"required,min=1"`
}

func FromModel(m *models.ResponseType) *ResponseTypeDTO {
	if m == nil {
		return nil
	}
	return &ResponseTypeDTO{
		ID:        m.ID,
		Name:      m.Name,
		Types:     append([]string(nil), m.Types...),
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(rows []models.ResponseType) []ResponseTypeDTO {
	out := make([]ResponseTypeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
