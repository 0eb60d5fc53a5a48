package dto

import (
	"courtbook/internal/domains/reason/model"
	"courtbook/shared"
	gDto "courtbook/shared/dto"
	gModel "courtbook/shared/model"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
)

type CreateReasonRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Active      *bool  `json:"active"      validate:"omitempty"`
}

func (c *CreateReasonRequest) ToModel(user string) model.Reason {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Reason{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateReasonRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	Active      *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type ReasonResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *ReasonResponse) FromModel(model model.Reason) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetReasonsResponse struct {
	Reasons   []ReasonResponse `json:"reasons"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReasonsResponse) FromModels(models []model.Reason, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reasons = make([]ReasonResponse, len(models))
	for i, mod := range models {
		r.Reasons[i].FromModel(mod)
	}
}
