// file: internals/features/gym/enrollments/service/capacity_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	sessModel "gymku_backend/internals/features/gym/class_sessions/model"
	sessService "gymku_backend/internals/features/gym/class_sessions/service"
	"gymku_backend/internals/features/gym/enrollments/model"
	memberService "gymku_backend/internals/features/gym/members/service"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/dbtime"
	"gymku_backend/internals/helpers/tenant"
	"gymku_backend/internals/metrics"
)

// Insert enroll diulang sekali kalau kena unique index (race dua request member yang sama).
const enrollAttempts = 2

type CapacityService struct {
	DB          *gorm.DB
	Clock       dbtime.Clock
	Eligibility memberService.EligibilityChecker
}

func NewCapacityService(db *gorm.DB, clock dbtime.Clock, elig memberService.EligibilityChecker) *CapacityService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	if elig == nil {
		elig = memberService.MembershipEligibility{}
	}
	return &CapacityService{DB: db, Clock: clock, Eligibility: elig}
}

// ComputeAvailableSeats: max(0, capacity - active). Tidak pernah negatif
// walaupun kapasitas diturunkan di bawah jumlah peserta.
func ComputeAvailableSeats(session sessModel.ClassSessionModel, activeCount int64) int {
	left := int64(session.ClassSessionCapacity) - activeCount
	if left < 0 {
		return 0
	}
	return int(left)
}

func activeStatuses() []string {
	out := make([]string, 0, len(model.ActiveStatuses))
	for _, s := range model.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// CountActive: jumlah enrollment enrolled|attended di sesi.
func CountActive(tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.SessionEnrollmentModel{}).
		Where("session_enrollment_session_id = ? AND session_enrollment_status IN ?", sessionID, activeStatuses()).
		Count(&n).Error
	return n, err
}

func lockActiveEnrollment(tx *gorm.DB, t tenant.Tenant, sessionID, memberID uuid.UUID) (*model.SessionEnrollmentModel, error) {
	var e model.SessionEnrollmentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_enrollment_gym_id = ? AND session_enrollment_session_id = ? AND session_enrollment_member_id = ?",
			t.GymID, sessionID, memberID).
		Where("session_enrollment_status IN ?", activeStatuses()).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no active enrollment for this member in this session")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

/* =========================================================
   Enroll
   ========================================================= */

func (s *CapacityService) Enroll(ctx context.Context, t tenant.Tenant, sessionID, memberID uuid.UUID, isRecurring bool) (*model.SessionEnrollmentModel, error) {
	timer := prometheus.NewTimer(metrics.EnrollDuration)
	defer timer.ObserveDuration()

	var out *model.SessionEnrollmentModel
	attempt := 0
	err := retry.Do(
		func() error {
			attempt++
			if attempt > 1 {
				metrics.EnrollRetries.Inc()
				log.Printf("[ENROLL] retry session=%s member=%s (unique violation)", sessionID, memberID)
			}
			e, err := s.enrollOnce(ctx, t, sessionID, memberID, isRecurring)
			if err != nil {
				return err
			}
			out = e
			return nil
		},
		retry.Attempts(enrollAttempts),
		retry.Delay(10*time.Millisecond),
		retry.RetryIf(helper.IsUniqueViolation),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if helper.IsUniqueViolation(err) {
		err = apperr.Wrap(apperr.KindDuplicateEnrollment, err, "member already enrolled in this session")
	}

	metrics.EnrollAttempts.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CapacityService) enrollOnce(ctx context.Context, t tenant.Tenant, sessionID, memberID uuid.UUID, isRecurring bool) (*model.SessionEnrollmentModel, error) {
	var out model.SessionEnrollmentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) kunci baris sesi sampai commit; enroll lain di sesi ini menunggu
		sess, class, err := sessService.LoadLiveSession(tx, t, sessionID, true)
		if err != nil {
			return err
		}

		// 2) jendela booking (dievaluasi saat request, tidak di-cache)
		now := s.Clock.Now()
		next := sessService.NextOccurrenceDate(now, t.Location, sess.ClassSessionDayOfWeek, sess.ClassSessionStartTime)
		startsAt := sessService.OccurrenceStart(next, t.Location, sess.ClassSessionStartTime)
		if !sessService.IsEnrollable(now, startsAt) {
			return apperr.InvalidState("booking closed: session starts at %s", startsAt.Format("2006-01-02 15:04"))
		}

		// 3) prasyarat membership
		if err := s.Eligibility.CheckEligible(tx, t, memberID, next); err != nil {
			return err
		}

		// 4) kapasitas
		count, err := CountActive(tx, sess.ClassSessionID)
		if err != nil {
			return err
		}
		if count >= int64(sess.ClassSessionCapacity) {
			return apperr.CapacityExceeded("session is full (%d/%d)", count, sess.ClassSessionCapacity)
		}

		// 5) duplikat
		var dup int64
		if err := tx.Model(&model.SessionEnrollmentModel{}).
			Where("session_enrollment_session_id = ? AND session_enrollment_member_id = ?", sess.ClassSessionID, memberID).
			Where("session_enrollment_status IN ?", activeStatuses()).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.DuplicateEnrollment("member already enrolled in this session")
		}

		// 6) insert
		out = model.SessionEnrollmentModel{
			SessionEnrollmentGymID:       t.GymID,
			SessionEnrollmentSessionID:   sess.ClassSessionID,
			SessionEnrollmentMemberID:    memberID,
			SessionEnrollmentStatus:      model.EnrollmentEnrolled,
			SessionEnrollmentIsRecurring: isRecurring,
			SessionEnrollmentSessionSnapshot: datatypes.JSONMap{
				"class_id":        class.GymClassID.String(),
				"class_name":      class.GymClassName,
				"day_of_week":     sess.ClassSessionDayOfWeek,
				"start_time":      sess.ClassSessionStartTime.Format("15:04"),
				"occurrence_date": next.Format("2006-01-02"),
				"capacity":        sess.ClassSessionCapacity,
			},
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		if sess.ClassSessionNextOccurrenceDate == nil || !sess.ClassSessionNextOccurrenceDate.Equal(next) {
			return tx.Model(&sessModel.ClassSessionModel{}).
				Where("class_session_id = ?", sess.ClassSessionID).
				UpdateColumn("class_session_next_occurrence_date", next).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* =========================================================
   Cancel
   ========================================================= */

// Cancel menghapus baris enrollment (tidak ada status "canceled").
// Tidak butuh sesi hidup: booking di sesi yang sudah dihapus tetap bisa dibatalkan.
func (s *CapacityService) Cancel(ctx context.Context, t tenant.Tenant, sessionID, memberID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockActiveEnrollment(tx, t, sessionID, memberID)
		if err != nil {
			return err
		}
		if e.SessionEnrollmentStatus == model.EnrollmentAttended {
			return apperr.InvalidState("cannot cancel a class already attended")
		}
		return tx.Delete(e).Error
	})
	metrics.CancelAttempts.WithLabelValues(metrics.Result(err)).Inc()
	return err
}

/* =========================================================
   Attendance
   ========================================================= */

// MarkAttended: enrolled → attended, stamp attended_at, potong saldo kelas member.
func (s *CapacityService) MarkAttended(ctx context.Context, t tenant.Tenant, sessionID, memberID uuid.UUID) (*model.SessionEnrollmentModel, error) {
	var out model.SessionEnrollmentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := lockActiveEnrollment(tx, t, sessionID, memberID)
		if err != nil {
			return err
		}
		if e.SessionEnrollmentStatus == model.EnrollmentAttended {
			return apperr.InvalidState("attendance already recorded")
		}

		now := s.Clock.Now()
		if err := tx.Model(e).Updates(map[string]any{
			"session_enrollment_status":      model.EnrollmentAttended,
			"session_enrollment_attended_at": now,
		}).Error; err != nil {
			return err
		}
		if err := s.Eligibility.ConsumeClass(tx, t, memberID); err != nil {
			return err
		}

		e.SessionEnrollmentStatus = model.EnrollmentAttended
		e.SessionEnrollmentAttendedAt = &now
		out = *e
		return nil
	})
	metrics.AttendanceMarks.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}
	return &out, nil
}
