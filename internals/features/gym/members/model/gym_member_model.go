// file: internals/features/gym/members/model/gym_member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GymMemberModel struct {
	GymMemberID    uuid.UUID  `gorm:"column:gym_member_id;type:uuid;primaryKey" json:"gym_member_id"`
	GymMemberGymID uuid.UUID  `gorm:"column:gym_member_gym_id;type:uuid;not null;index" json:"gym_member_gym_id"`
	GymMemberUserID *uuid.UUID `gorm:"column:gym_member_user_id;type:uuid;index" json:"gym_member_user_id,omitempty"`

	GymMemberName  string  `gorm:"column:gym_member_name;type:varchar(120);not null" json:"gym_member_name"`
	GymMemberEmail *string `gorm:"column:gym_member_email;type:varchar(160)" json:"gym_member_email,omitempty"`

	// masa berlaku membership (inklusif, per tanggal)
	GymMemberMembershipStart  *time.Time `gorm:"column:gym_member_membership_start" json:"gym_member_membership_start,omitempty"`
	GymMemberMembershipExpiry *time.Time `gorm:"column:gym_member_membership_expiry" json:"gym_member_membership_expiry,omitempty"`

	// nil = paket tanpa batas kelas
	GymMemberRemainingClasses *int `gorm:"column:gym_member_remaining_classes" json:"gym_member_remaining_classes,omitempty"`

	GymMemberCreatedAt time.Time      `gorm:"column:gym_member_created_at;not null;autoCreateTime" json:"gym_member_created_at"`
	GymMemberUpdatedAt time.Time      `gorm:"column:gym_member_updated_at;not null;autoUpdateTime" json:"gym_member_updated_at"`
	GymMemberDeletedAt gorm.DeletedAt `gorm:"column:gym_member_deleted_at;index" json:"gym_member_deleted_at,omitempty"`
}

func (GymMemberModel) TableName() string { return "gym_members" }

func (m *GymMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.GymMemberID == uuid.Nil {
		m.GymMemberID = uuid.New()
	}
	return nil
}
