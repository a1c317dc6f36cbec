// file: internals/features/gym/classes/model/gym_class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GymClassModel struct {
	GymClassID    uuid.UUID `gorm:"column:gym_class_id;type:uuid;primaryKey" json:"gym_class_id"`
	GymClassGymID uuid.UUID `gorm:"column:gym_class_gym_id;type:uuid;not null;index" json:"gym_class_gym_id"`

	GymClassName            string  `gorm:"column:gym_class_name;type:varchar(120);not null" json:"gym_class_name"`
	GymClassDescription     *string `gorm:"column:gym_class_description;type:text" json:"gym_class_description,omitempty"`
	GymClassDefaultCapacity int     `gorm:"column:gym_class_default_capacity;not null" json:"gym_class_default_capacity"`
	GymClassColor           *string `gorm:"column:gym_class_color;type:varchar(20)" json:"gym_class_color,omitempty"`

	GymClassCreatedAt time.Time      `gorm:"column:gym_class_created_at;not null;autoCreateTime" json:"gym_class_created_at"`
	GymClassUpdatedAt time.Time      `gorm:"column:gym_class_updated_at;not null;autoUpdateTime" json:"gym_class_updated_at"`
	GymClassDeletedAt gorm.DeletedAt `gorm:"column:gym_class_deleted_at;index" json:"gym_class_deleted_at,omitempty"`
}

func (GymClassModel) TableName() string { return "gym_classes" }

func (m *GymClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.GymClassID == uuid.Nil {
		m.GymClassID = uuid.New()
	}
	return nil
}
