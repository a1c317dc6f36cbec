package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/databases/dbtest"
	sessModel "gymku_backend/internals/features/gym/class_sessions/model"
	sessService "gymku_backend/internals/features/gym/class_sessions/service"
	classModel "gymku_backend/internals/features/gym/classes/model"
	"gymku_backend/internals/features/gym/enrollments/model"
	memberModel "gymku_backend/internals/features/gym/members/model"
	memberService "gymku_backend/internals/features/gym/members/service"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/dbtime"
	"gymku_backend/internals/helpers/tenant"
)

type fixture struct {
	db       *gorm.DB
	clock    *dbtime.FixedClock
	tn       tenant.Tenant
	sessions *sessService.SessionService
	capacity *CapacityService
	proj     *ProjectionService
}

// Minggu 2026-10-18 10:00 UTC; Senin berikutnya 2026-10-19.
func newFixture(t *testing.T, elig memberService.EligibilityChecker) *fixture {
	t.Helper()
	db := dbtest.NewSQLite(t)
	clock := dbtime.NewFixedClock(time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC))
	if elig == nil {
		elig = memberService.AllowAll{}
	}
	return &fixture{
		db:       db,
		clock:    clock,
		tn:       tenant.New(uuid.New(), time.UTC),
		sessions: sessService.NewSessionService(db, clock),
		capacity: NewCapacityService(db, clock, elig),
		proj:     NewProjectionService(db, clock),
	}
}

func (f *fixture) class(t *testing.T, name string, capacity int) *classModel.GymClassModel {
	t.Helper()
	c := &classModel.GymClassModel{GymClassGymID: f.tn.GymID, GymClassName: name, GymClassDefaultCapacity: capacity}
	if err := f.db.Create(c).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return c
}

func (f *fixture) session(t *testing.T, classID uuid.UUID, dow int, start string) *sessModel.ClassSessionModel {
	t.Helper()
	s, err := f.sessions.CreateTemplate(context.Background(), f.tn, sessService.CreateSessionInput{
		ClassID: classID, DayOfWeek: dow, StartTime: start,
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func (f *fixture) active(t *testing.T, sessionID uuid.UUID) int64 {
	t.Helper()
	n, err := CountActive(f.db, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func mustKind(t *testing.T, err error, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestComputeAvailableSeats(t *testing.T) {
	cases := []struct {
		capacity int
		active   int64
		want     int
	}{
		{10, 0, 10},
		{10, 3, 7},
		{2, 2, 0},
		{3, 5, 0},
	}
	for _, tc := range cases {
		got := ComputeAvailableSeats(sessModel.ClassSessionModel{ClassSessionCapacity: tc.capacity}, tc.active)
		if got != tc.want {
			t.Fatalf("capacity=%d active=%d: got %d want %d", tc.capacity, tc.active, got, tc.want)
		}
	}
}

func TestEnrollCapacityAndCancel(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	yoga := f.class(t, "Yoga", 2)
	mon := f.session(t, yoga.GymClassID, 1, "09:00")
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, a, false); err != nil {
		t.Fatalf("A enroll: %v", err)
	}
	if seats := ComputeAvailableSeats(*mon, f.active(t, mon.ClassSessionID)); seats != 1 {
		t.Fatalf("seats after A = %d", seats)
	}
	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, b, false); err != nil {
		t.Fatalf("B enroll: %v", err)
	}
	if seats := ComputeAvailableSeats(*mon, f.active(t, mon.ClassSessionID)); seats != 0 {
		t.Fatalf("seats after B = %d", seats)
	}

	_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, c, false)
	mustKind(t, err, apperr.ErrCapacityExceeded)

	if err := f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, a); err != nil {
		t.Fatalf("A cancel: %v", err)
	}
	e, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, c, true)
	if err != nil {
		t.Fatalf("C enroll after cancel: %v", err)
	}
	if e.SessionEnrollmentStatus != model.EnrollmentEnrolled || !e.SessionEnrollmentIsRecurring {
		t.Fatalf("unexpected enrollment: %+v", e)
	}
	if e.SessionEnrollmentSessionSnapshot["class_name"] != "Yoga" {
		t.Fatalf("snapshot missing class name: %v", e.SessionEnrollmentSessionSnapshot)
	}
	if e.SessionEnrollmentSessionSnapshot["occurrence_date"] != "2026-10-19" {
		t.Fatalf("snapshot occurrence = %v", e.SessionEnrollmentSessionSnapshot["occurrence_date"])
	}
}

func TestEnrollDuplicateAndReenroll(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "Spin", 10).GymClassID, 1, "07:00")
	m := uuid.New()

	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false); err != nil {
		t.Fatal(err)
	}
	_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false)
	mustKind(t, err, apperr.ErrDuplicateEnrollment)

	if err := f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, m); err != nil {
		t.Fatal(err)
	}
	mustKind(t, f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, m), apperr.ErrNotFound)

	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false); err != nil {
		t.Fatalf("re-enroll after cancel: %v", err)
	}
	if n := f.active(t, mon.ClassSessionID); n != 1 {
		t.Fatalf("active = %d want 1", n)
	}
}

func TestEnrollMissingTargets(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	yoga := f.class(t, "Yoga", 5)
	mon := f.session(t, yoga.GymClassID, 1, "09:00")

	_, err := f.capacity.Enroll(ctx, f.tn, uuid.New(), uuid.New(), false)
	mustKind(t, err, apperr.ErrNotFound)

	other := tenant.New(uuid.New(), time.UTC)
	_, err = f.capacity.Enroll(ctx, other, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrNotFound)

	m := uuid.New()
	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false); err != nil {
		t.Fatal(err)
	}

	if _, err := f.sessions.SoftDelete(ctx, f.tn, mon.ClassSessionID); err != nil {
		t.Fatal(err)
	}
	_, err = f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrNotFound)

	// booking di sesi yang sudah dihapus tetap bisa dibatalkan
	if err := f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, m); err != nil {
		t.Fatalf("cancel on deleted session: %v", err)
	}

	wed := f.session(t, yoga.GymClassID, 3, "09:00")
	if err := f.db.Delete(yoga).Error; err != nil {
		t.Fatal(err)
	}
	_, err = f.capacity.Enroll(ctx, f.tn, wed.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrNotFound)
}

func TestEnrollBookingWindow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "Yoga", 5).GymClassID, 1, "09:00")

	f.clock.Set(time.Date(2026, 10, 19, 8, 31, 0, 0, time.UTC))
	_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrInvalidState)

	f.clock.Set(time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC))
	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false); err != nil {
		t.Fatalf("enroll exactly at cutoff: %v", err)
	}

	// lewat grace: kejadian berikutnya minggu depan, booking buka lagi
	f.clock.Set(time.Date(2026, 10, 19, 9, 45, 0, 0, time.UTC))
	e, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	if err != nil {
		t.Fatalf("enroll for next week: %v", err)
	}
	if e.SessionEnrollmentSessionSnapshot["occurrence_date"] != "2026-10-26" {
		t.Fatalf("occurrence = %v", e.SessionEnrollmentSessionSnapshot["occurrence_date"])
	}
}

func TestMarkAttendedTransitions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "HIIT", 2).GymClassID, 1, "18:00")
	m := uuid.New()

	_, err := f.capacity.MarkAttended(ctx, f.tn, mon.ClassSessionID, m)
	mustKind(t, err, apperr.ErrNotFound)

	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false); err != nil {
		t.Fatal(err)
	}
	f.clock.Set(time.Date(2026, 10, 19, 18, 5, 0, 0, time.UTC))
	e, err := f.capacity.MarkAttended(ctx, f.tn, mon.ClassSessionID, m)
	if err != nil {
		t.Fatalf("mark attended: %v", err)
	}
	if e.SessionEnrollmentStatus != model.EnrollmentAttended || e.SessionEnrollmentAttendedAt == nil {
		t.Fatalf("unexpected enrollment: %+v", e)
	}

	_, err = f.capacity.MarkAttended(ctx, f.tn, mon.ClassSessionID, m)
	mustKind(t, err, apperr.ErrInvalidState)
	mustKind(t, f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, m), apperr.ErrInvalidState)

	// attended tetap memakai kursi dan tetap memblokir enroll ulang
	if n := f.active(t, mon.ClassSessionID); n != 1 {
		t.Fatalf("active = %d want 1", n)
	}
	f.clock.Set(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	_, err = f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false)
	mustKind(t, err, apperr.ErrDuplicateEnrollment)
}

func TestCapacityReductionIsNotRetroactive(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "Pilates", 3).GymClassID, 1, "09:00")
	members := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, m := range members {
		if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false); err != nil {
			t.Fatal(err)
		}
	}

	one := 1
	updated, err := f.sessions.UpdateTemplate(ctx, f.tn, mon.ClassSessionID, sessService.SessionPatch{Capacity: &one})
	if err != nil {
		t.Fatalf("reduce capacity: %v", err)
	}
	if n := f.active(t, mon.ClassSessionID); n != 3 {
		t.Fatalf("existing enrollments touched: active = %d", n)
	}
	if seats := ComputeAvailableSeats(*updated, 3); seats != 0 {
		t.Fatalf("seats = %d want 0", seats)
	}

	_, err = f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrCapacityExceeded)

	for _, m := range members {
		if err := f.capacity.Cancel(ctx, f.tn, mon.ClassSessionID, m); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false); err != nil {
		t.Fatalf("enroll after drain: %v", err)
	}
}

func TestConcurrentEnrollNeverOverbooks(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "Bootcamp", 5).GymClassID, 1, "09:00")

	const attempts = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
		other    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, apperr.ErrCapacityExceeded):
				full++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	if len(other) > 0 {
		t.Fatalf("unexpected errors: %v", other)
	}
	if ok != 5 || full != attempts-5 {
		t.Fatalf("ok=%d full=%d", ok, full)
	}
	if n := f.active(t, mon.ClassSessionID); n != 5 {
		t.Fatalf("active = %d want 5", n)
	}
}

func TestConcurrentEnrollSameMember(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	mon := f.session(t, f.class(t, "Zumba", 10).GymClassID, 1, "09:00")
	m := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok, dup int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, m, false)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, apperr.ErrDuplicateEnrollment) {
				dup++
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dup != 9 {
		t.Fatalf("ok=%d dup=%d", ok, dup)
	}
	if n := f.active(t, mon.ClassSessionID); n != 1 {
		t.Fatalf("active = %d want 1", n)
	}
}

func TestEnrollWithMembershipEligibility(t *testing.T) {
	f := newFixture(t, memberService.MembershipEligibility{})
	ctx := context.Background()
	yoga := f.class(t, "Yoga", 10)
	mon := f.session(t, yoga.GymClassID, 1, "09:00")
	wed := f.session(t, yoga.GymClassID, 3, "09:00")

	one := 1
	member := &memberModel.GymMemberModel{GymMemberGymID: f.tn.GymID, GymMemberName: "Rina", GymMemberRemainingClasses: &one}
	if err := f.db.Create(member).Error; err != nil {
		t.Fatal(err)
	}
	expiry := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	lapsed := &memberModel.GymMemberModel{GymMemberGymID: f.tn.GymID, GymMemberName: "Budi", GymMemberMembershipExpiry: &expiry}
	if err := f.db.Create(lapsed).Error; err != nil {
		t.Fatal(err)
	}

	_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrInvalidState)
	_, err = f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, lapsed.GymMemberID, false)
	mustKind(t, err, apperr.ErrInvalidState)

	if _, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, member.GymMemberID, false); err != nil {
		t.Fatalf("eligible member: %v", err)
	}
	f.clock.Set(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	if _, err := f.capacity.MarkAttended(ctx, f.tn, mon.ClassSessionID, member.GymMemberID); err != nil {
		t.Fatalf("mark attended: %v", err)
	}

	var reloaded memberModel.GymMemberModel
	if err := f.db.First(&reloaded, "gym_member_id = ?", member.GymMemberID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.GymMemberRemainingClasses == nil || *reloaded.GymMemberRemainingClasses != 0 {
		t.Fatalf("remaining = %v want 0", reloaded.GymMemberRemainingClasses)
	}

	_, err = f.capacity.Enroll(ctx, f.tn, wed.ClassSessionID, member.GymMemberID, false)
	mustKind(t, err, apperr.ErrInvalidState)
}

// failEnrollmentInserts membuat insert session_enrollments gagal dengan
// unique violation sebanyak n kali pertama (n < 0: selalu gagal).
func failEnrollmentInserts(t *testing.T, db *gorm.DB, n int) *int {
	t.Helper()
	calls := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_enrollment_insert", func(tx *gorm.DB) {
		if tx.Statement.Table != (model.SessionEnrollmentModel{}).TableName() {
			return
		}
		calls++
		if n < 0 || calls <= n {
			tx.AddError(gorm.ErrDuplicatedKey)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return &calls
}

func TestEnrollRetriesOnceAfterUniqueViolation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	yoga := f.class(t, "Yoga", 5)
	mon := f.session(t, yoga.GymClassID, 1, "09:00")
	calls := failEnrollmentInserts(t, f.db, 1)

	e, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	if err != nil {
		t.Fatalf("second attempt should succeed: %v", err)
	}
	if e == nil || e.SessionEnrollmentID == uuid.Nil {
		t.Fatalf("enrollment not returned: %+v", e)
	}
	if *calls != 2 {
		t.Fatalf("insert attempts = %d want 2", *calls)
	}
	if got := f.active(t, mon.ClassSessionID); got != 1 {
		t.Fatalf("active = %d want 1 (first attempt must roll back)", got)
	}
}

func TestEnrollGivesUpAfterSecondUniqueViolation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	yoga := f.class(t, "Yoga", 5)
	mon := f.session(t, yoga.GymClassID, 1, "09:00")
	calls := failEnrollmentInserts(t, f.db, -1)

	_, err := f.capacity.Enroll(ctx, f.tn, mon.ClassSessionID, uuid.New(), false)
	mustKind(t, err, apperr.ErrDuplicateEnrollment)
	if *calls != 2 {
		t.Fatalf("insert attempts = %d want 2", *calls)
	}
	if got := f.active(t, mon.ClassSessionID); got != 0 {
		t.Fatalf("active = %d want 0", got)
	}
}
