// file: internals/features/gym/members/controller/gym_member_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/members/dto"
	"gymku_backend/internals/features/gym/members/service"
	helper "gymku_backend/internals/helpers"
	helperAuth "gymku_backend/internals/helpers/auth"
)

type GymMemberController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Svc      *service.MemberService
	Loc      *time.Location
}

func New(db *gorm.DB, v *validator.Validate, loc *time.Location) *GymMemberController {
	if v == nil {
		v = validator.New()
	}
	return &GymMemberController{DB: db, Validate: v, Svc: service.NewMemberService(db), Loc: loc}
}

// POST /api/a/members
func (ctl *GymMemberController) Create(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var req dto.CreateGymMemberRequest
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
	return helper.JsonCreated(c, "Member berhasil dibuat", dto.FromModel(*m))
}

// GET /api/a/members/:id
func (ctl *GymMemberController) Detail(c *fiber.Ctx) error {
	t, err := helperAuth.ResolveTenant(c, ctl.Loc)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	m, err := ctl.Svc.Get(c.UserContext(), t, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}
