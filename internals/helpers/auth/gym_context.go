// file: internals/helpers/auth/gym_context.go
package helper

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymku_backend/internals/constants"
	"gymku_backend/internals/helpers/dbtime"
	"gymku_backend/internals/helpers/tenant"
)

/* ============================================
   Locals Keys (diisi middleware AuthJWT)
   ============================================ */

const (
	LocUserID   = "user_id"   // string UUID
	LocGymID    = "gym_id"    // string UUID (tenant aktif)
	LocMemberID = "member_id" // string UUID, kosong untuk staff murni
	LocRoles    = "roles"     // []string
	LocRawToken = "raw_token" // string, untuk logout/revoke
)

var (
	ErrGymContextMissing = fiber.NewError(fiber.StatusUnauthorized, "Konteks gym tidak ditemukan di token")
	ErrMemberMissing     = fiber.NewError(fiber.StatusBadRequest, "member_id wajib diisi")
	ErrForbiddenMember   = fiber.NewError(fiber.StatusForbidden, constants.RoleErrorSelfOrStaff("data member lain"))
)

func uuidLocal(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	switch v := c.Locals(key).(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, false
		}
		return id, true
	default:
		return uuid.Nil, false
	}
}

func GetGymID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := uuidLocal(c, LocGymID)
	if !ok {
		return uuid.Nil, ErrGymContextMissing
	}
	return id, nil
}

// GetMemberID: member_id dari token (kalau user adalah member gym).
func GetMemberID(c *fiber.Ctx) (uuid.UUID, bool) {
	return uuidLocal(c, LocMemberID)
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	return uuidLocal(c, LocUserID)
}

func GetRoles(c *fiber.Ctx) []string {
	if rr, ok := c.Locals(LocRoles).([]string); ok {
		return rr
	}
	return nil
}

func HasRole(c *fiber.Ctx, role string) bool {
	return slices.Contains(GetRoles(c), strings.ToLower(strings.TrimSpace(role)))
}

func IsStaff(c *fiber.Ctx) bool {
	for _, r := range constants.StaffRoles {
		if HasRole(c, r) {
			return true
		}
	}
	return false
}

// ResolveTenant: gym_id dari token (atau path :gym_id untuk route publik)
// + timezone gym.
func ResolveTenant(c *fiber.Ctx, fallbackLoc *time.Location) (tenant.Tenant, error) {
	gymID, err := GetGymID(c)
	if err != nil {
		raw := strings.TrimSpace(c.Params("gym_id"))
		id, perr := uuid.Parse(raw)
		if raw == "" || perr != nil || id == uuid.Nil {
			return tenant.Tenant{}, err
		}
		gymID = id
	}
	return tenant.New(gymID, dbtime.GetGymLocation(c, fallbackLoc)), nil
}

// ResolveActingMember menentukan member yang jadi subjek aksi:
//   - member biasa: selalu dirinya sendiri (member_id di body harus sama / kosong)
//   - staff: wajib menyebut member_id
func ResolveActingMember(c *fiber.Ctx, requested *uuid.UUID) (uuid.UUID, error) {
	self, hasSelf := GetMemberID(c)

	if requested != nil && *requested != uuid.Nil {
		if IsStaff(c) || (hasSelf && *requested == self) {
			return *requested, nil
		}
		return uuid.Nil, ErrForbiddenMember
	}
	if hasSelf {
		return self, nil
	}
	return uuid.Nil, ErrMemberMissing
}
