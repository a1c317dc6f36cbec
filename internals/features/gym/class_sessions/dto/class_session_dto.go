// file: internals/features/gym/class_sessions/dto/class_session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"gymku_backend/internals/features/gym/class_sessions/model"
	"gymku_backend/internals/features/gym/class_sessions/service"
)

/* ===================== REQUESTS ===================== */

type CreateClassSessionRequest struct {
	ClassSessionClassID   uuid.UUID `json:"class_session_class_id" validate:"required"`
	ClassSessionDayOfWeek *int      `json:"class_session_day_of_week" validate:"required,min=0,max=6"`
	ClassSessionStartTime string    `json:"class_session_start_time" validate:"required"`
	ClassSessionCapacity  *int      `json:"class_session_capacity" validate:"omitempty,gt=0"`
}

func (r CreateClassSessionRequest) ToInput() service.CreateSessionInput {
	dow := -1
	if r.ClassSessionDayOfWeek != nil {
		dow = *r.ClassSessionDayOfWeek
	}
	return service.CreateSessionInput{
		ClassID:   r.ClassSessionClassID,
		DayOfWeek: dow,
		StartTime: r.ClassSessionStartTime,
		Capacity:  r.ClassSessionCapacity,
	}
}

// PUT tetap parsial: field kosong = tidak diubah.
type UpdateClassSessionRequest struct {
	ClassSessionDayOfWeek *int    `json:"class_session_day_of_week" validate:"omitempty,min=0,max=6"`
	ClassSessionStartTime *string `json:"class_session_start_time" validate:"omitempty"`
	ClassSessionCapacity  *int    `json:"class_session_capacity" validate:"omitempty,gt=0"`
}

func (r UpdateClassSessionRequest) ToPatch() service.SessionPatch {
	return service.SessionPatch{
		DayOfWeek: r.ClassSessionDayOfWeek,
		StartTime: r.ClassSessionStartTime,
		Capacity:  r.ClassSessionCapacity,
	}
}

/* ===================== RESPONSES ===================== */

type ClassSessionResponse struct {
	ClassSessionID                 uuid.UUID  `json:"class_session_id"`
	ClassSessionGymID              uuid.UUID  `json:"class_session_gym_id"`
	ClassSessionClassID            uuid.UUID  `json:"class_session_class_id"`
	ClassSessionDayOfWeek          int        `json:"class_session_day_of_week"`
	ClassSessionStartTime          string     `json:"class_session_start_time"`
	ClassSessionCapacity           int        `json:"class_session_capacity"`
	ClassSessionNextOccurrenceDate *string    `json:"class_session_next_occurrence_date,omitempty"`
	ClassSessionCreatedAt          time.Time  `json:"class_session_created_at"`
	ClassSessionUpdatedAt          time.Time  `json:"class_session_updated_at"`
	ClassSessionDeletedAt          *time.Time `json:"class_session_deleted_at,omitempty"`
}

// FromModel: tanggal kejadian dirender di zona gym (loc).
func FromModel(m model.ClassSessionModel, loc *time.Location) ClassSessionResponse {
	if loc == nil {
		loc = time.UTC
	}
	var next *string
	if m.ClassSessionNextOccurrenceDate != nil {
		s := m.ClassSessionNextOccurrenceDate.In(loc).Format("2006-01-02")
		next = &s
	}
	var deletedAt *time.Time
	if m.ClassSessionDeletedAt.Valid {
		t := m.ClassSessionDeletedAt.Time
		deletedAt = &t
	}
	return ClassSessionResponse{
		ClassSessionID:                 m.ClassSessionID,
		ClassSessionGymID:              m.ClassSessionGymID,
		ClassSessionClassID:            m.ClassSessionClassID,
		ClassSessionDayOfWeek:          m.ClassSessionDayOfWeek,
		ClassSessionStartTime:          m.ClassSessionStartTime.Format("15:04"),
		ClassSessionCapacity:           m.ClassSessionCapacity,
		ClassSessionNextOccurrenceDate: next,
		ClassSessionCreatedAt:          m.ClassSessionCreatedAt,
		ClassSessionUpdatedAt:          m.ClassSessionUpdatedAt,
		ClassSessionDeletedAt:          deletedAt,
	}
}
