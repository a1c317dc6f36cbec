// file: internals/features/gym/classes/service/class_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/classes/model"
	helper "gymku_backend/internals/helpers"
	"gymku_backend/internals/helpers/apperr"
	"gymku_backend/internals/helpers/tenant"
)

type ClassService struct {
	DB *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{DB: db}
}

type CreateClassInput struct {
	Name            string
	Description     *string
	DefaultCapacity int
	Color           *string
}

// ClassPatch: field nil = tidak diubah.
type ClassPatch struct {
	Name            *string
	Description     *string
	DefaultCapacity *int
	Color           *string
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *ClassService) Create(ctx context.Context, t tenant.Tenant, in CreateClassInput) (*model.GymClassModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("class name is required")
	}
	if in.DefaultCapacity <= 0 {
		return nil, apperr.Validation("default capacity must be greater than 0")
	}

	m := &model.GymClassModel{
		GymClassGymID:           t.GymID,
		GymClassName:            name,
		GymClassDescription:     trimPtr(in.Description),
		GymClassDefaultCapacity: in.DefaultCapacity,
		GymClassColor:           trimPtr(in.Color),
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Get: kelas hidup milik tenant; soft-deleted dianggap tidak ada.
func (s *ClassService) Get(ctx context.Context, t tenant.Tenant, classID uuid.UUID) (*model.GymClassModel, error) {
	var m model.GymClassModel
	err := s.DB.WithContext(ctx).
		Where("gym_class_id = ? AND gym_class_gym_id = ?", classID, t.GymID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("class not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ClassService) List(ctx context.Context, t tenant.Tenant, q string, p helper.Paging) ([]model.GymClassModel, int64, error) {
	tx := s.DB.WithContext(ctx).
		Model(&model.GymClassModel{}).
		Where("gym_class_gym_id = ?", t.GymID)

	if q = strings.TrimSpace(q); q != "" {
		tx = tx.Where("LOWER(gym_class_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]model.GymClassModel, 0)
	if err := tx.Order("gym_class_name ASC").Order("gym_class_id ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update tidak menyentuh kapasitas sesi yang sudah ada (kapasitas sesi di-materialize).
func (s *ClassService) Update(ctx context.Context, t tenant.Tenant, classID uuid.UUID, patch ClassPatch) (*model.GymClassModel, error) {
	m, err := s.Get(ctx, t, classID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.Validation("class name is required")
		}
		updates["gym_class_name"] = name
	}
	if patch.DefaultCapacity != nil {
		if *patch.DefaultCapacity <= 0 {
			return nil, apperr.Validation("default capacity must be greater than 0")
		}
		updates["gym_class_default_capacity"] = *patch.DefaultCapacity
	}
	if patch.Description != nil {
		updates["gym_class_description"] = trimPtr(patch.Description)
	}
	if patch.Color != nil {
		updates["gym_class_color"] = trimPtr(patch.Color)
	}
	if len(updates) == 0 {
		return m, nil
	}

	if err := s.DB.WithContext(ctx).Model(m).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, t, classID)
}

// SoftDelete: hanya set deleted_at; sesi & enrollment tetap ada untuk histori.
func (s *ClassService) SoftDelete(ctx context.Context, t tenant.Tenant, classID uuid.UUID) (*model.GymClassModel, error) {
	m, err := s.Get(ctx, t, classID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(m).Error; err != nil {
		return nil, err
	}

	var out model.GymClassModel
	if err := s.DB.WithContext(ctx).Unscoped().
		Where("gym_class_id = ?", classID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
