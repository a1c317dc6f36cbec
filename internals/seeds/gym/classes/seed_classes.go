package classes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessService "gymku_backend/internals/features/gym/class_sessions/service"
	"gymku_backend/internals/features/gym/classes/model"
	"gymku_backend/internals/helpers/tenant"
)

type SessionSeed struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	Capacity  *int   `json:"capacity"`
}

type ClassSeed struct {
	GymID           uuid.UUID     `json:"gym_id"`
	Timezone        string        `json:"timezone"`
	Name            string        `json:"name"`
	Description     *string       `json:"description"`
	DefaultCapacity int           `json:"default_capacity"`
	Color           *string       `json:"color"`
	Sessions        []SessionSeed `json:"sessions"`
}

// SeedClassesFromJSON: kelas + jadwal mingguan. Kelas yang namanya sudah ada
// di gym yang sama dilewati (aman dijalankan ulang).
func SeedClassesFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var seeds []ClassSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	ctx := context.Background()
	sessions := sessService.NewSessionService(db, nil)

	for _, s := range seeds {
		var n int64
		if err := db.Model(&model.GymClassModel{}).
			Where("gym_class_gym_id = ? AND gym_class_name = ?", s.GymID, s.Name).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("ℹ️ Kelas '%s' sudah ada, dilewati.", s.Name)
			continue
		}

		loc := time.UTC
		if s.Timezone != "" {
			if l, err := time.LoadLocation(s.Timezone); err == nil {
				loc = l
			}
		}
		t := tenant.New(s.GymID, loc)

		class := model.GymClassModel{
			GymClassGymID:           s.GymID,
			GymClassName:            s.Name,
			GymClassDescription:     s.Description,
			GymClassDefaultCapacity: s.DefaultCapacity,
			GymClassColor:           s.Color,
		}
		if err := db.Create(&class).Error; err != nil {
			return fmt.Errorf("insert kelas '%s': %w", s.Name, err)
		}

		for _, ss := range s.Sessions {
			if _, err := sessions.CreateTemplate(ctx, t, sessService.CreateSessionInput{
				ClassID:   class.GymClassID,
				DayOfWeek: ss.DayOfWeek,
				StartTime: ss.StartTime,
				Capacity:  ss.Capacity,
			}); err != nil {
				return fmt.Errorf("insert sesi '%s' hari %d: %w", s.Name, ss.DayOfWeek, err)
			}
		}
		log.Printf("✅ Berhasil insert kelas '%s' (%d sesi)", s.Name, len(s.Sessions))
	}
	return nil
}
