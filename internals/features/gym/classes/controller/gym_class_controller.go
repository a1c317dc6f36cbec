// file: internals/features/gym/classes/controller/gym_class_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/classes/dto"
	"gymku_backend/internals/features/gym/classes/service"
	helper "gymku_backend/internals/helpers"
	helperAuth "gymku_backend/internals/helpers/auth"
)

type GymClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Svc      *service.ClassService
	Loc      *time.Location // zona default kalau token tidak bawa gym_timezone
}

func New(db *gorm.DB, v *validator.Validate, loc *time.Location) *GymClassController {
	if v == nil {
		v = validator.New()
	}
	return &GymClassController{
		DB:       db,
		Validate: v,
		Svc:      service.NewClassService(db),
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

// POST /api/a/classes
func (ctl *GymClassController) Create(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateGymClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Svc.Create(c.UserContext(), t, req.ToInput())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", dto.FromModel(*m))
}

// GET /api/a/classes?q=&page=&per_page=
func (ctl *GymClassController) List(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.List(c.UserContext(), t, c.Query("q"), p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPagination(total, p)
	return helper.JsonList(c, "ok", dto.FromModels(rows), &pg)
}

// GET /api/a/classes/:id
func (ctl *GymClassController) Detail(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := ctl.Svc.Get(c.UserContext(), t, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// PATCH /api/a/classes/:id
func (ctl *GymClassController) Patch(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.PatchGymClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Svc.Update(c.UserContext(), t, id, req.ToPatch())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas berhasil diperbarui", dto.FromModel(*m))
}

// DELETE /api/a/classes/:id (soft delete)
func (ctl *GymClassController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", dto.FromModel(*m))
}
