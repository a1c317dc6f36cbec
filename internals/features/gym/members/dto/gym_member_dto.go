// file: internals/features/gym/members/dto/gym_member_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"gymku_backend/internals/features/gym/members/model"
	"gymku_backend/internals/features/gym/members/service"
)

type CreateGymMemberRequest struct {
	GymMemberUserID           *uuid.UUID `json:"gym_member_user_id" validate:"omitempty"`
	GymMemberName             string     `json:"gym_member_name" validate:"required,max=120"`
	GymMemberEmail            *string    `json:"gym_member_email" validate:"omitempty,email,max=160"`
	GymMemberMembershipStart  *string    `json:"gym_member_membership_start" validate:"omitempty,datetime=2006-01-02"`
	GymMemberMembershipExpiry *string    `json:"gym_member_membership_expiry" validate:"omitempty,datetime=2006-01-02"`
	GymMemberRemainingClasses *int       `json:"gym_member_remaining_classes" validate:"omitempty,gte=0"`
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}

func (r CreateGymMemberRequest) ToInput() service.CreateMemberInput {
	return service.CreateMemberInput{
		UserID:           r.GymMemberUserID,
		Name:             r.GymMemberName,
		Email:            r.GymMemberEmail,
		MembershipStart:  parseDatePtr(r.GymMemberMembershipStart),
		MembershipExpiry: parseDatePtr(r.GymMemberMembershipExpiry),
		RemainingClasses: r.GymMemberRemainingClasses,
	}
}

type GymMemberResponse struct {
	GymMemberID               uuid.UUID  `json:"gym_member_id"`
	GymMemberGymID            uuid.UUID  `json:"gym_member_gym_id"`
	GymMemberUserID           *uuid.UUID `json:"gym_member_user_id,omitempty"`
	GymMemberName             string     `json:"gym_member_name"`
	GymMemberEmail            *string    `json:"gym_member_email,omitempty"`
	GymMemberMembershipStart  *string    `json:"gym_member_membership_start,omitempty"`
	GymMemberMembershipExpiry *string    `json:"gym_member_membership_expiry,omitempty"`
	GymMemberRemainingClasses *int       `json:"gym_member_remaining_classes,omitempty"`
	GymMemberCreatedAt        time.Time  `json:"gym_member_created_at"`
}

func dateStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

func FromModel(m model.GymMemberModel) GymMemberResponse {
	return GymMemberResponse{
		GymMemberID:               m.GymMemberID,
		GymMemberGymID:            m.GymMemberGymID,
		GymMemberUserID:           m.GymMemberUserID,
		GymMemberName:             m.GymMemberName,
		GymMemberEmail:            m.GymMemberEmail,
		GymMemberMembershipStart:  dateStr(m.GymMemberMembershipStart),
		GymMemberMembershipExpiry: dateStr(m.GymMemberMembershipExpiry),
		GymMemberRemainingClasses: m.GymMemberRemainingClasses,
		GymMemberCreatedAt:        m.GymMemberCreatedAt,
	}
}
