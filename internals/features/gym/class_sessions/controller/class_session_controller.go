// file: internals/features/gym/class_sessions/controller/class_session_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/class_sessions/dto"
	"gymku_backend/internals/features/gym/class_sessions/service"
	helper "gymku_backend/internals/helpers"
	helperAuth "gymku_backend/internals/helpers/auth"
	"gymku_backend/internals/helpers/dbtime"
)

type ClassSessionController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Svc      *service.SessionService
	Loc      *time.Location
}

func New(db *gorm.DB, v *validator.Validate, clock dbtime.Clock, loc *time.Location) *ClassSessionController {
	if v == nil {
		v = validator.New()
	}
	return &ClassSessionController{
		DB:       db,
		Validate: v,
		Svc:      service.NewSessionService(db, clock),
		Loc:      loc,
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
	}
	return id, nil
}

// POST /api/a/sessions
func (ctl *ClassSessionController) Create(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Svc.CreateTemplate(c.UserContext(), t, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Sesi berhasil dibuat", dto.FromModel(*m, t.Location))
}

// PUT /api/a/sessions/:id
func (ctl *ClassSessionController) Update(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Svc.UpdateTemplate(c.UserContext(), t, id, req.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Sesi berhasil diperbarui", dto.FromModel(*m, t.Location))
}

// DELETE /api/a/sessions/:id (soft delete)
func (ctl *ClassSessionController) Delete(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := ctl.Svc.SoftDelete(c.UserContext(), t, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Sesi berhasil dihapus", dto.FromModel(*m, t.Location))
}
