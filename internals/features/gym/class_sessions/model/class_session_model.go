// file: internals/features/gym/class_sessions/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/helpers/dbtime"
)

// ClassSessionModel = slot mingguan sebuah kelas (template) + tanggal kejadian berikutnya.
// Satu kelas hanya boleh punya satu sesi hidup per hari (index unik parsial).
type ClassSessionModel struct {
	ClassSessionID      uuid.UUID `gorm:"column:class_session_id;type:uuid;primaryKey" json:"class_session_id"`
	ClassSessionGymID   uuid.UUID `gorm:"column:class_session_gym_id;type:uuid;not null;index" json:"class_session_gym_id"`
	ClassSessionClassID uuid.UUID `gorm:"column:class_session_class_id;type:uuid;not null;index" json:"class_session_class_id"`

	// 0 = Minggu … 6 = Sabtu (sama dengan time.Weekday)
	ClassSessionDayOfWeek int        `gorm:"column:class_session_day_of_week;not null" json:"class_session_day_of_week"`
	ClassSessionStartTime dbtime.Tod `gorm:"column:class_session_start_time;type:time;not null" json:"class_session_start_time"`

	// di-materialize dari gym_class_default_capacity saat create
	ClassSessionCapacity int `gorm:"column:class_session_capacity;not null" json:"class_session_capacity"`

	// 00:00 waktu lokal gym pada tanggal kejadian berikutnya
	ClassSessionNextOccurrenceDate *time.Time `gorm:"column:class_session_next_occurrence_date" json:"class_session_next_occurrence_date,omitempty"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;not null;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time      `gorm:"column:class_session_updated_at;not null;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index" json:"class_session_deleted_at,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}
