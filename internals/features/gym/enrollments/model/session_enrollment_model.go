// file: internals/features/gym/enrollments/model/session_enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EnrollmentStatus string

// Cancel = hapus baris, jadi tidak ada status "canceled".
const (
	EnrollmentEnrolled EnrollmentStatus = "enrolled"
	EnrollmentAttended EnrollmentStatus = "attended"
)

// ActiveStatuses dihitung ke kapasitas.
var ActiveStatuses = []EnrollmentStatus{EnrollmentEnrolled, EnrollmentAttended}

type SessionEnrollmentModel struct {
	SessionEnrollmentID        uuid.UUID `gorm:"column:session_enrollment_id;type:uuid;primaryKey" json:"session_enrollment_id"`
	SessionEnrollmentGymID     uuid.UUID `gorm:"column:session_enrollment_gym_id;type:uuid;not null;index" json:"session_enrollment_gym_id"`
	SessionEnrollmentSessionID uuid.UUID `gorm:"column:session_enrollment_session_id;type:uuid;not null;index" json:"session_enrollment_session_id"`
	SessionEnrollmentMemberID  uuid.UUID `gorm:"column:session_enrollment_member_id;type:uuid;not null;index" json:"session_enrollment_member_id"`

	SessionEnrollmentStatus      EnrollmentStatus `gorm:"column:session_enrollment_status;type:varchar(16);not null" json:"session_enrollment_status"`
	SessionEnrollmentIsRecurring bool             `gorm:"column:session_enrollment_is_recurring;not null;default:false" json:"session_enrollment_is_recurring"`

	// snapshot kelas/sesi saat booking (nama kelas, hari, jam) untuk laporan historis
	SessionEnrollmentSessionSnapshot datatypes.JSONMap `gorm:"column:session_enrollment_session_snapshot" json:"session_enrollment_session_snapshot,omitempty"`

	SessionEnrollmentAttendedAt *time.Time `gorm:"column:session_enrollment_attended_at" json:"session_enrollment_attended_at,omitempty"`

	SessionEnrollmentCreatedAt time.Time `gorm:"column:session_enrollment_created_at;not null;autoCreateTime" json:"session_enrollment_created_at"`
	SessionEnrollmentUpdatedAt time.Time `gorm:"column:session_enrollment_updated_at;not null;autoUpdateTime" json:"session_enrollment_updated_at"`
}

func (SessionEnrollmentModel) TableName() string { return "session_enrollments" }

func (m *SessionEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.SessionEnrollmentID == uuid.Nil {
		m.SessionEnrollmentID = uuid.New()
	}
	if m.SessionEnrollmentSessionSnapshot == nil {
		m.SessionEnrollmentSessionSnapshot = datatypes.JSONMap{}
	}
	return nil
}
