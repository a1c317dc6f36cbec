// file: internals/features/gym/enrollments/dto/session_enrollment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"gymku_backend/internals/features/gym/enrollments/model"
)

/* ===================== REQUESTS ===================== */

// member_id opsional untuk member (diambil dari token), wajib untuk staff.
type EnrollRequest struct {
	MemberID    *uuid.UUID `json:"member_id" validate:"omitempty"`
	IsRecurring bool       `json:"is_recurring"`
}

type CancelRequest struct {
	MemberID *uuid.UUID `json:"member_id" validate:"omitempty"`
}

type AttendanceRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
}

/* ===================== RESPONSES ===================== */

type SessionEnrollmentResponse struct {
	SessionEnrollmentID              uuid.UUID      `json:"session_enrollment_id"`
	SessionEnrollmentGymID           uuid.UUID      `json:"session_enrollment_gym_id"`
	SessionEnrollmentSessionID       uuid.UUID      `json:"session_enrollment_session_id"`
	SessionEnrollmentMemberID        uuid.UUID      `json:"session_enrollment_member_id"`
	SessionEnrollmentStatus          string         `json:"session_enrollment_status"`
	SessionEnrollmentIsRecurring     bool           `json:"session_enrollment_is_recurring"`
	SessionEnrollmentSessionSnapshot map[string]any `json:"session_enrollment_session_snapshot,omitempty"`
	SessionEnrollmentAttendedAt      *time.Time     `json:"session_enrollment_attended_at,omitempty"`
	SessionEnrollmentCreatedAt       time.Time      `json:"session_enrollment_created_at"`
}

func FromModel(m model.SessionEnrollmentModel) SessionEnrollmentResponse {
	return SessionEnrollmentResponse{
		SessionEnrollmentID:              m.SessionEnrollmentID,
		SessionEnrollmentGymID:           m.SessionEnrollmentGymID,
		SessionEnrollmentSessionID:       m.SessionEnrollmentSessionID,
		SessionEnrollmentMemberID:        m.SessionEnrollmentMemberID,
		SessionEnrollmentStatus:          string(m.SessionEnrollmentStatus),
		SessionEnrollmentIsRecurring:     m.SessionEnrollmentIsRecurring,
		SessionEnrollmentSessionSnapshot: map[string]any(m.SessionEnrollmentSessionSnapshot),
		SessionEnrollmentAttendedAt:      m.SessionEnrollmentAttendedAt,
		SessionEnrollmentCreatedAt:       m.SessionEnrollmentCreatedAt,
	}
}
