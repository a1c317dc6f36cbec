package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	sessModel "gymku_backend/internals/features/gym/class_sessions/model"
	classModel "gymku_backend/internals/features/gym/classes/model"
	enrollModel "gymku_backend/internals/features/gym/enrollments/model"
	memberModel "gymku_backend/internals/features/gym/members/model"
	authModel "gymku_backend/internals/features/users/auth/model"
)

// Index parsial: dialek Postgres & SQLite sama-sama mendukung.
var partialIndexes = []string{
	// satu sesi hidup per (kelas, hari)
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_class_sessions_class_dow_live
	   ON class_sessions (class_session_class_id, class_session_day_of_week)
	   WHERE class_session_deleted_at IS NULL`,

	// satu enrollment aktif per (sesi, member); backstop race enroll
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_session_enrollments_active
	   ON session_enrollments (session_enrollment_session_id, session_enrollment_member_id)
	   WHERE session_enrollment_status IN ('enrolled', 'attended')`,

	`CREATE INDEX IF NOT EXISTS idx_session_enrollments_session_status
	   ON session_enrollments (session_enrollment_session_id, session_enrollment_status)`,

	`CREATE INDEX IF NOT EXISTS idx_class_sessions_class_live
	   ON class_sessions (class_session_class_id, class_session_next_occurrence_date)
	   WHERE class_session_deleted_at IS NULL`,
}

// Migrate: AutoMigrate tabel domain + index parsial. Idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&classModel.GymClassModel{},
		&sessModel.ClassSessionModel{},
		&memberModel.GymMemberModel{},
		&enrollModel.SessionEnrollmentModel{},
		&authModel.TokenBlacklist{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	log.Println("[MIGRATE] ✅ schema up to date")
	return nil
}
