// file: internals/features/gym/class_sessions/service/session_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymku_backend/internals/features/gym/class_sessions/model"
	classModel "gymku_backend/internals/features/gym/classes/model"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/dbtime"
	"gymku_backend/internals/helpers/tenant"
)

type SessionService struct {
	DB    *gorm.DB
	Clock dbtime.Clock
}

func NewSessionService(db *gorm.DB, clock dbtime.Clock) *SessionService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	return &SessionService{DB: db, Clock: clock}
}

type CreateSessionInput struct {
	ClassID   uuid.UUID
	DayOfWeek int
	StartTime string // "HH:MM" / "HH:MM:SS"
	Capacity  *int   // nil = ikut default kelas
}

// SessionPatch: field nil = tidak diubah.
type SessionPatch struct {
	DayOfWeek *int
	StartTime *string
	Capacity  *int
}

var errSlotTaken = apperr.Conflict("class already has a session on this weekday")

/* =========================================================
   Loader (dipakai juga oleh enrollments, di dalam tx)
   ========================================================= */

// LoadLiveSession: sesi hidup + kelas induk hidup, scoped tenant.
// lock=true → SELECT … FOR UPDATE pada baris sesi.
func LoadLiveSession(tx *gorm.DB, t tenant.Tenant, sessionID uuid.UUID, lock bool) (*model.ClassSessionModel, *classModel.GymClassModel, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var s model.ClassSessionModel
	err := q.Where("class_session_id = ? AND class_session_gym_id = ?", sessionID, t.GymID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("session not found")
	}
	if err != nil {
		return nil, nil, err
	}

	var c classModel.GymClassModel
	err = tx.Where("gym_class_id = ? AND gym_class_gym_id = ?", s.ClassSessionClassID, t.GymID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.NotFound("session not found")
	}
	if err != nil {
		return nil, nil, err
	}
	return &s, &c, nil
}

func lockLiveClass(tx *gorm.DB, t tenant.Tenant, classID uuid.UUID) (*classModel.GymClassModel, error) {
	var c classModel.GymClassModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("gym_class_id = ? AND gym_class_gym_id = ?", classID, t.GymID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("class not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// slotTaken: ada sesi hidup lain di (class, weekday)?
func slotTaken(tx *gorm.DB, classID uuid.UUID, dayOfWeek int, exclude *uuid.UUID) (bool, error) {
	q := tx.Model(&model.ClassSessionModel{}).
		Where("class_session_class_id = ? AND class_session_day_of_week = ?", classID, dayOfWeek)
	if exclude != nil {
		q = q.Where("class_session_id <> ?", *exclude)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

/* =========================================================
   Create
   ========================================================= */

func (s *SessionService) CreateTemplate(ctx context.Context, t tenant.Tenant, in CreateSessionInput) (*model.ClassSessionModel, error) {
	if !ValidDayOfWeek(in.DayOfWeek) {
		return nil, apperr.Validation("day_of_week must be between 0 and 6")
	}
	start, err := dbtime.Parse(in.StartTime)
	if err != nil {
		return nil, apperr.Validation("start_time must be HH:MM or HH:MM:SS")
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		return nil, apperr.Validation("capacity must be greater than 0")
	}

	var out model.ClassSessionModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		class, err := lockLiveClass(tx, t, in.ClassID)
		if err != nil {
			return err
		}

		taken, err := slotTaken(tx, class.GymClassID, in.DayOfWeek, nil)
		if err != nil {
			return err
		}
		if taken {
			return errSlotTaken
		}

		capacity := class.GymClassDefaultCapacity
		if in.Capacity != nil {
			capacity = *in.Capacity
		}
		next := NextOccurrenceDate(s.Clock.Now(), t.Location, in.DayOfWeek, start)

		out = model.ClassSessionModel{
			ClassSessionGymID:              t.GymID,
			ClassSessionClassID:            class.GymClassID,
			ClassSessionDayOfWeek:          in.DayOfWeek,
			ClassSessionStartTime:          start,
			ClassSessionCapacity:           capacity,
			ClassSessionNextOccurrenceDate: &next,
		}
		return tx.Create(&out).Error
	})
	if helper.IsUniqueViolation(err) {
		return nil, errSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   Update
   ========================================================= */

func (s *SessionService) UpdateTemplate(ctx context.Context, t tenant.Tenant, sessionID uuid.UUID, patch SessionPatch) (*model.ClassSessionModel, error) {
	if patch.DayOfWeek != nil && !ValidDayOfWeek(*patch.DayOfWeek) {
		return nil, apperr.Validation("day_of_week must be between 0 and 6")
	}
	var newStart *dbtime.Tod
	if patch.StartTime != nil {
		st, err := dbtime.Parse(*patch.StartTime)
		if err != nil {
			return nil, apperr.Validation("start_time must be HH:MM or HH:MM:SS")
		}
		newStart = &st
	}
	// kapasitas boleh diturunkan di bawah jumlah peserta aktif (tidak retroaktif)
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return nil, apperr.Validation("capacity must be greater than 0")
	}

	var out model.ClassSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, _, err := LoadLiveSession(tx, t, sessionID, true)
		if err != nil {
			return err
		}

		if patch.DayOfWeek != nil && *patch.DayOfWeek != sess.ClassSessionDayOfWeek {
			if _, err := lockLiveClass(tx, t, sess.ClassSessionClassID); err != nil {
				return err
			}
			taken, err := slotTaken(tx, sess.ClassSessionClassID, *patch.DayOfWeek, &sess.ClassSessionID)
			if err != nil {
				return err
			}
			if taken {
				return errSlotTaken
			}
			sess.ClassSessionDayOfWeek = *patch.DayOfWeek
		}
		if newStart != nil {
			sess.ClassSessionStartTime = *newStart
		}
		if patch.Capacity != nil {
			sess.ClassSessionCapacity = *patch.Capacity
		}
		next := NextOccurrenceDate(s.Clock.Now(), t.Location, sess.ClassSessionDayOfWeek, sess.ClassSessionStartTime)
		sess.ClassSessionNextOccurrenceDate = &next

		if err := tx.Model(sess).Updates(map[string]any{
			"class_session_day_of_week":          sess.ClassSessionDayOfWeek,
			"class_session_start_time":           sess.ClassSessionStartTime,
			"class_session_capacity":             sess.ClassSessionCapacity,
			"class_session_next_occurrence_date": next,
		}).Error; err != nil {
			return err
		}
		out = *sess
		return nil
	})
	if helper.IsUniqueViolation(err) {
		return nil, errSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   Soft delete
   ========================================================= */

// SoftDelete: enrollment lama tetap bisa di-query untuk laporan.
func (s *SessionService) SoftDelete(ctx context.Context, t tenant.Tenant, sessionID uuid.UUID) (*model.ClassSessionModel, error) {
	var out model.ClassSessionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sess model.ClassSessionModel
		err := tx.Where("class_session_id = ? AND class_session_gym_id = ?", sessionID, t.GymID).
			First(&sess).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("session not found")
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&sess).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("class_session_id = ?", sessionID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   Next occurrence refresh
   ========================================================= */

// RefreshNextOccurrence menghitung ulang tanggal kejadian berikutnya dan
// menulis balik kalau nilai tersimpan sudah basi. Gagal tulis tidak
// menggagalkan read (hasil hitung tetap dipakai).
func (s *SessionService) RefreshNextOccurrence(ctx context.Context, t tenant.Tenant, sess *model.ClassSessionModel) time.Time {
	next := NextOccurrenceDate(s.Clock.Now(), t.Location, sess.ClassSessionDayOfWeek, sess.ClassSessionStartTime)
	stale := sess.ClassSessionNextOccurrenceDate == nil || !sess.ClassSessionNextOccurrenceDate.Equal(next)
	sess.ClassSessionNextOccurrenceDate = &next

	if stale {
		if err := s.DB.WithContext(ctx).Model(&model.ClassSessionModel{}).
			Where("class_session_id = ?", sess.ClassSessionID).
			UpdateColumn("class_session_next_occurrence_date", next).Error; err != nil {
			log.Printf("[SESSION] gagal update next_occurrence_date session=%s: %v", sess.ClassSessionID, err)
		}
	}
	return next
}
