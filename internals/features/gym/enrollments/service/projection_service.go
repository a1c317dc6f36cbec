// file: internals/features/gym/enrollments/service/projection_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessModel "gymku_backend/internals/features/gym/class_sessions/model"
	sessService "gymku_backend/internals/features/gym/class_sessions/service"
	classModel "gymku_backend/internals/features/gym/classes/model"
	"gymku_backend/internals/features/gym/enrollments/model"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/dbtime"
	"gymku_backend/internals/helpers/tenant"
)

type ProjectionService struct {
	DB       *gorm.DB
	Clock    dbtime.Clock
	Sessions *sessService.SessionService
}

func NewProjectionService(db *gorm.DB, clock dbtime.Clock) *ProjectionService {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	return &ProjectionService{DB: db, Clock: clock, Sessions: sessService.NewSessionService(db, clock)}
}

// SessionView: sesi + okupansi live. IsEnrolled/IsRecurring hanya terisi
// kalau listing diminta untuk member tertentu.
type SessionView struct {
	ClassSessionID        uuid.UUID  `json:"class_session_id"`
	ClassID               uuid.UUID  `json:"class_id"`
	ClassName             string     `json:"class_name"`
	DayOfWeek             int        `json:"day_of_week"`
	StartTime             string     `json:"start_time"`
	Capacity              int        `json:"capacity"`
	ActiveEnrollmentCount int64      `json:"active_enrollment_count"`
	AvailableSeats        int        `json:"available_seats"`
	NextOccurrenceDate    *string    `json:"next_occurrence_date"`
	StartsAt              *time.Time `json:"starts_at,omitempty"`
	BookingClosesAt       *time.Time `json:"booking_closes_at,omitempty"`
	IsEnrollable          bool       `json:"is_enrollable"`
	IsEnrolled            *bool      `json:"is_enrolled,omitempty"`
	IsRecurring           *bool      `json:"is_recurring,omitempty"`
	EnrollmentStatus      *string    `json:"enrollment_status,omitempty"`

	startSec int
	nextAt   *time.Time
}

// MemberEnrollmentView: "kelas saya". Induk yang sudah dihapus tetap ikut (ditandai).
type MemberEnrollmentView struct {
	SessionEnrollmentID uuid.UUID      `json:"session_enrollment_id"`
	ClassSessionID      uuid.UUID      `json:"class_session_id"`
	ClassID             *uuid.UUID     `json:"class_id,omitempty"`
	ClassName           string         `json:"class_name"`
	DayOfWeek           *int           `json:"day_of_week,omitempty"`
	StartTime           *string        `json:"start_time,omitempty"`
	Status              string         `json:"status"`
	IsRecurring         bool           `json:"is_recurring"`
	AttendedAt          *time.Time     `json:"attended_at,omitempty"`
	NextOccurrenceDate  *string        `json:"next_occurrence_date"`
	StartsAt            *time.Time     `json:"starts_at,omitempty"`
	SessionDeleted      bool           `json:"session_deleted"`
	ClassDeleted        bool           `json:"class_deleted"`
	Snapshot            map[string]any `json:"snapshot,omitempty"`
	EnrolledAt          time.Time      `json:"enrolled_at"`

	startSec int
	nextAt   *time.Time
}

type countRow struct {
	SessionID uuid.UUID `gorm:"column:session_id"`
	N         int64     `gorm:"column:n"`
}

func (s *ProjectionService) countsBySession(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []countRow
	if err := s.DB.WithContext(ctx).
		Model(&model.SessionEnrollmentModel{}).
		Select("session_enrollment_session_id AS session_id, COUNT(*) AS n").
		Where("session_enrollment_session_id IN ? AND session_enrollment_status IN ?", ids, activeStatuses()).
		Group("session_enrollment_session_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.SessionID] = r.N
	}
	return out, nil
}

// lessNext: tanggal kejadian naik (kosong di akhir), lalu jam mulai naik.
func lessNext(a, b *time.Time, aSec, bSec int) (less, decided bool) {
	switch {
	case a == nil && b == nil:
	case a == nil:
		return false, true
	case b == nil:
		return true, true
	case !a.Equal(*b):
		return a.Before(*b), true
	}
	if aSec != bSec {
		return aSec < bSec, true
	}
	return false, false
}

/* =========================================================
   listUpcomingSessionsForClass
   ========================================================= */

func (s *ProjectionService) ListUpcomingSessionsForClass(ctx context.Context, t tenant.Tenant, classID uuid.UUID, memberID *uuid.UUID) ([]SessionView, error) {
	var class classModel.GymClassModel
	err := s.DB.WithContext(ctx).
		Where("gym_class_id = ? AND gym_class_gym_id = ?", classID, t.GymID).
		First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("class not found")
	}
	if err != nil {
		return nil, err
	}

	var sessions []sessModel.ClassSessionModel
	if err := s.DB.WithContext(ctx).
		Where("class_session_class_id = ? AND class_session_gym_id = ?", classID, t.GymID).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(sessions))
	for _, ss := range sessions {
		ids = append(ids, ss.ClassSessionID)
	}

	counts, err := s.countsBySession(ctx, ids)
	if err != nil {
		return nil, err
	}

	mine := map[uuid.UUID]model.SessionEnrollmentModel{}
	if memberID != nil && len(ids) > 0 {
		var rows []model.SessionEnrollmentModel
		if err := s.DB.WithContext(ctx).
			Where("session_enrollment_member_id = ? AND session_enrollment_session_id IN ?", *memberID, ids).
			Where("session_enrollment_status IN ?", activeStatuses()).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			mine[r.SessionEnrollmentSessionID] = r
		}
	}

	now := s.Clock.Now()
	out := make([]SessionView, 0, len(sessions))
	for i := range sessions {
		ss := &sessions[i]
		next := s.Sessions.RefreshNextOccurrence(ctx, t, ss)
		startsAt := sessService.OccurrenceStart(next, t.Location, ss.ClassSessionStartTime)
		closesAt := sessService.BookingClosesAt(startsAt)
		dateStr := next.Format("2006-01-02")
		active := counts[ss.ClassSessionID]

		v := SessionView{
			ClassSessionID:        ss.ClassSessionID,
			ClassID:               class.GymClassID,
			ClassName:             class.GymClassName,
			DayOfWeek:             ss.ClassSessionDayOfWeek,
			StartTime:             ss.ClassSessionStartTime.Format("15:04"),
			Capacity:              ss.ClassSessionCapacity,
			ActiveEnrollmentCount: active,
			AvailableSeats:        ComputeAvailableSeats(*ss, active),
			NextOccurrenceDate:    &dateStr,
			StartsAt:              &startsAt,
			BookingClosesAt:       &closesAt,
			IsEnrollable:          sessService.IsEnrollable(now, startsAt),
			startSec:              ss.ClassSessionStartTime.Seconds(),
			nextAt:                &next,
		}
		if memberID != nil {
			e, ok := mine[ss.ClassSessionID]
			enrolled := ok
			recurring := ok && e.SessionEnrollmentIsRecurring
			v.IsEnrolled = &enrolled
			v.IsRecurring = &recurring
			if ok {
				st := string(e.SessionEnrollmentStatus)
				v.EnrollmentStatus = &st
			}
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		less, _ := lessNext(out[i].nextAt, out[j].nextAt, out[i].startSec, out[j].startSec)
		return less
	})
	return out, nil
}

/* =========================================================
   listEnrollmentsForMember
   ========================================================= */

func (s *ProjectionService) ListEnrollmentsForMember(ctx context.Context, t tenant.Tenant, memberID uuid.UUID) ([]MemberEnrollmentView, error) {
	var rows []model.SessionEnrollmentModel
	if err := s.DB.WithContext(ctx).
		Where("session_enrollment_gym_id = ? AND session_enrollment_member_id = ?", t.GymID, memberID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []MemberEnrollmentView{}, nil
	}

	sessIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		sessIDs = append(sessIDs, r.SessionEnrollmentSessionID)
	}

	// Unscoped: histori tetap tampil walau sesi/kelas sudah soft-deleted
	var sessions []sessModel.ClassSessionModel
	if err := s.DB.WithContext(ctx).Unscoped().
		Where("class_session_id IN ?", sessIDs).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	sessByID := make(map[uuid.UUID]*sessModel.ClassSessionModel, len(sessions))
	classIDs := make([]uuid.UUID, 0, len(sessions))
	for i := range sessions {
		sessByID[sessions[i].ClassSessionID] = &sessions[i]
		classIDs = append(classIDs, sessions[i].ClassSessionClassID)
	}

	var classes []classModel.GymClassModel
	if len(classIDs) > 0 {
		if err := s.DB.WithContext(ctx).Unscoped().
			Where("gym_class_id IN ?", classIDs).
			Find(&classes).Error; err != nil {
			return nil, err
		}
	}
	classByID := make(map[uuid.UUID]*classModel.GymClassModel, len(classes))
	for i := range classes {
		classByID[classes[i].GymClassID] = &classes[i]
	}

	out := make([]MemberEnrollmentView, 0, len(rows))
	for _, r := range rows {
		v := MemberEnrollmentView{
			SessionEnrollmentID: r.SessionEnrollmentID,
			ClassSessionID:      r.SessionEnrollmentSessionID,
			Status:              string(r.SessionEnrollmentStatus),
			IsRecurring:         r.SessionEnrollmentIsRecurring,
			AttendedAt:          r.SessionEnrollmentAttendedAt,
			Snapshot:            map[string]any(r.SessionEnrollmentSessionSnapshot),
			EnrolledAt:          r.SessionEnrollmentCreatedAt,
		}
		if name, ok := r.SessionEnrollmentSessionSnapshot["class_name"].(string); ok {
			v.ClassName = name
		}

		ss, ok := sessByID[r.SessionEnrollmentSessionID]
		if !ok {
			v.SessionDeleted = true
			out = append(out, v)
			continue
		}
		dow := ss.ClassSessionDayOfWeek
		st := ss.ClassSessionStartTime.Format("15:04")
		v.DayOfWeek = &dow
		v.StartTime = &st
		v.startSec = ss.ClassSessionStartTime.Seconds()
		v.SessionDeleted = ss.ClassSessionDeletedAt.Valid

		if c, ok := classByID[ss.ClassSessionClassID]; ok {
			cid := c.GymClassID
			v.ClassID = &cid
			v.ClassName = c.GymClassName
			v.ClassDeleted = c.GymClassDeletedAt.Valid
		}

		// hanya sesi hidup yang punya kejadian berikutnya
		if !v.SessionDeleted && !v.ClassDeleted {
			next := s.Sessions.RefreshNextOccurrence(ctx, t, ss)
			startsAt := sessService.OccurrenceStart(next, t.Location, ss.ClassSessionStartTime)
			d := next.Format("2006-01-02")
			v.NextOccurrenceDate = &d
			v.StartsAt = &startsAt
			v.nextAt = &next
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		less, decided := lessNext(out[i].nextAt, out[j].nextAt, out[i].startSec, out[j].startSec)
		if decided {
			return less
		}
		return out[i].EnrolledAt.Before(out[j].EnrolledAt)
	})
	return out, nil
}
