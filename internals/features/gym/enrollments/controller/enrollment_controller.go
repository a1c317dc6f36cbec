// file: internals/features/gym/enrollments/controller/enrollment_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/enrollments/dto"
	"gymku_backend/internals/features/gym/enrollments/service"
	memberService "gymku_backend/internals/features/gym/members/service"
	helper "gymku_backend/internals/helpers"
	helperAuth "gymku_backend/internals/helpers/auth"
	"gymku_backend/internals/helpers/dbtime"
)

type EnrollmentController struct {
	DB         *gorm.DB
	Validate   *validator.Validate
	Capacity   *service.CapacityService
	Projection *service.ProjectionService
	Loc        *time.Location
}

func New(db *gorm.DB, v *validator.Validate, clock dbtime.Clock, loc *time.Location, elig memberService.EligibilityChecker) *EnrollmentController {
	if v == nil {
		v = validator.New()
	}
	return &EnrollmentController{
		DB:         db,
		Validate:   v,
		Capacity:   service.NewCapacityService(db, clock, elig),
		Projection: service.NewProjectionService(db, clock),
		Loc:        loc,
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// body kosong diperbolehkan (member pakai member_id dari token)
func (ctl *EnrollmentController) parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	return nil
}

/* =========================================================
   Listing
   ========================================================= */

// GET /api/u/classes/:id/sessions[?member_id=] (member_id lain hanya untuk staff)
func (ctl *EnrollmentController) ListClassSessions(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	classID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var memberID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		req, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id tidak valid")
		}
		id, err := helperAuth.ResolveActingMember(c, &req)
		if err != nil {
			return helper.JsonAppError(c, err)
		}
		memberID = &id
	} else if self, ok := helperAuth.GetMemberID(c); ok {
		memberID = &self
	}

	rows, err := ctl.Projection.ListUpcomingSessionsForClass(c.UserContext(), t, classID, memberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/public/gyms/:gym_id/classes/:id/sessions (halaman booking publik)
func (ctl *EnrollmentController) PublicListClassSessions(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "gym_id tidak valid")
	}
	classID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	rows, err := ctl.Projection.ListUpcomingSessionsForClass(c.UserContext(), t, classID, nil)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	c.Set("Cache-Control", "no-store")
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/u/my/enrollments
func (ctl *EnrollmentController) MyEnrollments(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	memberID, err := helperAuth.ResolveActingMember(c, nil)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	rows, err := ctl.Projection.ListEnrollmentsForMember(c.UserContext(), t, memberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/u/members/:id/enrollments (diri sendiri atau staff)
func (ctl *EnrollmentController) MemberEnrollments(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	req, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	memberID, err := helperAuth.ResolveActingMember(c, &req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	rows, err := ctl.Projection.ListEnrollmentsForMember(c.UserContext(), t, memberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* =========================================================
   Enroll / Cancel / Attendance
   ========================================================= */

// POST /api/u/sessions/:id/enroll
func (ctl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.EnrollRequest
	if err := ctl.parseOptionalBody(c, &req); err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	memberID, err := helperAuth.ResolveActingMember(c, req.MemberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	e, err := ctl.Capacity.Enroll(c.UserContext(), t, sessionID, memberID, req.IsRecurring)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Berhasil mendaftar sesi", dto.FromModel(*e))
}

// POST /api/u/sessions/:id/cancel
func (ctl *EnrollmentController) Cancel(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CancelRequest
	if err := ctl.parseOptionalBody(c, &req); err != nil {
		return helper.JsonAppError(c, err)
	}
	memberID, err := helperAuth.ResolveActingMember(c, req.MemberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	if err := ctl.Capacity.Cancel(c.UserContext(), t, sessionID, memberID); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Pendaftaran dibatalkan", fiber.Map{
		"class_session_id": sessionID,
		"member_id":        memberID,
	})
}

// POST /api/a/sessions/:id/attendance
func (ctl *EnrollmentController) MarkAttendance(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	e, err := ctl.Capacity.MarkAttended(c.UserContext(), t, sessionID, req.MemberID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Kehadiran dicatat", dto.FromModel(*e))
}
