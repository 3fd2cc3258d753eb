package templates

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/types"
)

// TemplateDTO is the transport shape for an audit template.
type TemplateDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Note      *string   `json:"note,omitempty"`
	Tags      []string  `json:"tags"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTemplateInput describes a new template.
type CreateTemplateInput struct {
	Name      string   `json:"name" validate:"required"`
	Note      *string  `json:"note"`
	Tags      []string `json:"tags"`
	Questions []string `json:"questions"`
}

// UpdateTemplateInput carries the partial-merge fields.
type UpdateTemplateInput struct {
	Name      types.Optional[string]   `json:"name"`
	Note      types.Optional[string]   `json:"note"`
	Tags      types.Optional[[]string] `json:"tags"`
	Questions types.Optional[[]string] `json:"questions"`
}

func FromModel(m *models.AuditTemplate) *TemplateDTO {
	if m == nil {
		return nil
	}
	return &TemplateDTO{
		ID:        m.ID,
		Name:      m.Name,
		Note:      m.Note,
		Tags:      append([]string(nil), m.Tags...),
		Questions: append([]string(nil), m.Questions...),
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(rows []models.AuditTemplate) []TemplateDTO {
	out := make([]TemplateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
