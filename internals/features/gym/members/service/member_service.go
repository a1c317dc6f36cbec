// file: internals/features/gym/members/service/member_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/members/model"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/tenant"
)

const dateLayout = "2006-01-02"

type MemberService struct {
	DB *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{DB: db}
}

type CreateMemberInput struct {
	UserID           *uuid.UUID
	Name             string
	Email            *string
	MembershipStart  *time.Time
	MembershipExpiry *time.Time
	RemainingClasses *int
}

func (s *MemberService) Create(ctx context.Context, t tenant.Tenant, in CreateMemberInput) (*model.GymMemberModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("member name is required")
	}
	if in.MembershipStart != nil && in.MembershipExpiry != nil && in.MembershipExpiry.Before(*in.MembershipStart) {
		return nil, apperr.Validation("membership expiry must not be before start")
	}
	if in.RemainingClasses != nil && *in.RemainingClasses < 0 {
		return nil, apperr.Validation("remaining classes must not be negative")
	}

	var email *string
	if in.Email != nil {
		if e := strings.ToLower(strings.TrimSpace(*in.Email)); e != "" {
			email = &e
		}
	}

	m := &model.GymMemberModel{
		GymMemberGymID:            t.GymID,
		GymMemberUserID:           in.UserID,
		GymMemberName:             name,
		GymMemberEmail:            email,
		GymMemberMembershipStart:  in.MembershipStart,
		GymMemberMembershipExpiry: in.MembershipExpiry,
		GymMemberRemainingClasses: in.RemainingClasses,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberService) Get(ctx context.Context, t tenant.Tenant, memberID uuid.UUID) (*model.GymMemberModel, error) {
	return findMember(s.DB.WithContext(ctx), t, memberID)
}

func findMember(tx *gorm.DB, t tenant.Tenant, memberID uuid.UUID) (*model.GymMemberModel, error) {
	var m model.GymMemberModel
	err := tx.Where("gym_member_id = ? AND gym_member_gym_id = ?", memberID, t.GymID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
