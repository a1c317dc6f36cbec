// file: internals/features/gym/classes/dto/gym_class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"gymku_backend/internals/features/gym/classes/model"
	"gymku_backend/internals/features/gym/classes/service"
)

/* ===================== REQUESTS ===================== */

type CreateGymClassRequest struct {
	GymClassName            string  `json:"gym_class_name" validate:"required,max=120"`
	GymClassDescription     *string `json:"gym_class_description" validate:"omitempty,max=2000"`
	GymClassDefaultCapacity int     `json:"gym_class_default_capacity" validate:"required,gt=0"`
	GymClassColor           *string `json:"gym_class_color" validate:"omitempty,max=20"`
}

func (r CreateGymClassRequest) ToInput() service.CreateClassInput {
	return service.CreateClassInput{
		Name:            r.GymClassName,
		Description:     r.GymClassDescription,
		DefaultCapacity: r.GymClassDefaultCapacity,
		Color:           r.GymClassColor,
	}
}

type PatchGymClassRequest struct {
	GymClassName            *string `json:"gym_class_name" validate:"omitempty,max=120"`
	GymClassDescription     *string `json:"gym_class_description" validate:"omitempty,max=2000"`
	GymClassDefaultCapacity *int    `json:"gym_class_default_capacity" validate:"omitempty,gt=0"`
	GymClassColor           *string `json:"gym_class_color" validate:"omitempty,max=20"`
}

func (r PatchGymClassRequest) ToPatch() service.ClassPatch {
	return service.ClassPatch{
		Name:            r.GymClassName,
		Description:     r.GymClassDescription,
		DefaultCapacity: r.GymClassDefaultCapacity,
		Color:           r.GymClassColor,
	}
}

/* ===================== RESPONSES ===================== */

type GymClassResponse struct {
	GymClassID              uuid.UUID  `json:"gym_class_id"`
	GymClassGymID           uuid.UUID  `json:"gym_class_gym_id"`
	GymClassName            string     `json:"gym_class_name"`
	GymClassDescription     *string    `json:"gym_class_description,omitempty"`
	GymClassDefaultCapacity int        `json:"gym_class_default_capacity"`
	GymClassColor           *string    `json:"gym_class_color,omitempty"`
	GymClassCreatedAt       time.Time  `json:"gym_class_created_at"`
	GymClassUpdatedAt       time.Time  `json:"gym_class_updated_at"`
	GymClassDeletedAt       *time.Time `json:"gym_class_deleted_at,omitempty"`
}

func FromModel(m model.GymClassModel) GymClassResponse {
	var deletedAt *time.Time
	if m.GymClassDeletedAt.Valid {
		t := m.GymClassDeletedAt.Time
		deletedAt = &t
	}
	return GymClassResponse{
		GymClassID:              m.GymClassID,
		GymClassGymID:           m.GymClassGymID,
		GymClassName:            m.GymClassName,
		GymClassDescription:     m.GymClassDescription,
		GymClassDefaultCapacity: m.GymClassDefaultCapacity,
		GymClassColor:           m.GymClassColor,
		GymClassCreatedAt:       m.GymClassCreatedAt,
		GymClassUpdatedAt:       m.GymClassUpdatedAt,
		GymClassDeletedAt:       deletedAt,
	}
}

func FromModels(rows []model.GymClassModel) []GymClassResponse {
	out := make([]GymClassResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
