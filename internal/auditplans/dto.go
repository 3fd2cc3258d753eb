package auditplans

import (
	"time"

	"github.com/audirhq/audir-backend/pkg/db/models"
	"github.com/audirhq/audir-backend/pkg/types"
)

// DateLayout is the wire format for plan dates.
const DateLayout = "2006-01-02"

// PlanDTO is the transport shape for an audit plan.
type PlanDTO struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	AuditType    string    `json:"audit_type"`
	AuditSubtype *string   `json:"audit_subtype,omitempty"`
	AuditorName  *string   `json:"auditor_name,omitempty"`
	Department   *string   `json:"department,omitempty"`
	LocationCity *string   `json:"location_city,omitempty"`
	Site         *string   `json:"site,omitempty"`
	Country      *string   `json:"country,omitempty"`
	Region       *string   `json:"region,omitempty"`
	AuditNote    *string   `json:"audit_note,omitempty"`
	ResponseType *string   `json:"response_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreatePlanInput describes a new audit plan. The code is generated
// server-side, never supplied by the client.
type CreatePlanInput struct {
	StartDate    string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	AuditType    string  `json:"audit_type" validate:"required"`
	AuditSubtype *string `json:"audit_subtype"`
	AuditorName  *string `json:"auditor_name"`
	Department   *string `json:"department"`
	LocationCity *string `json:"location_city"`
	Site         *string `json:"site"`
	Country      *string `json:"country"`
	Region       *string `json:"region"`
	AuditNote    *string `json:"audit_note"`
	ResponseType *string `json:"response_type"`
}

// UpdatePlanInput carries the partial-merge fields. The generated code and
// audit type are fixed at creation.
type UpdatePlanInput struct {
	StartDate    types.Optional[string] `json:"start_date"`
	EndDate      types.Optional[string] `json:"end_date"`
	AuditorName  types.Optional[string] `json:"auditor_name"`
	Department   types.Optional[string] `json:"department"`
	LocationCity types.Optional[string] `json:"location_city"`
	Site         types.Optional[string] `json:"site"`
	Country      types.Optional[string] `json:"country"`
	Region       types.Optional[string] `json:"region"`
	AuditNote    types.Optional[string] `json:"audit_note"`
	ResponseType types.Optional[string] `json:"response_type"`
}

func FromModel(m *models.AuditPlan) *PlanDTO {
	if m == nil {
		return nil
	}
	return &PlanDTO{
		ID:           m.ID,
		Code:         m.Code,
		StartDate:    m.StartDate.Format(DateLayout),
		EndDate:      m.EndDate.Format(DateLayout),
		AuditType:    m.AuditType,
		AuditSubtype: m.AuditSubtype,
		AuditorName:  m.AuditorName,
		Department:   m.Department,
		LocationCity: m.LocationCity,
		Site:         m.Site,
		Country:      m.Country,
		Region:       m.Region,
		AuditNote:    m.AuditNote,
		ResponseType: m.ResponseType,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func FromModels(rows []models.AuditPlan) []PlanDTO {
	out := make([]PlanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
