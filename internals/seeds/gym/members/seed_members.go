package members

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymku_backend/internals/features/gym/members/model"
)

type MemberSeed struct {
	GymID            uuid.UUID  `json:"gym_id"`
	UserID           *uuid.UUID `json:"user_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	MembershipStart  string     `json:"membership_start"`
	MembershipExpiry string     `json:"membership_expiry"`
	RemainingClasses *int       `json:"remaining_classes"`
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// SeedMembersFromJSON: member dengan email yang sudah ada di gym dilewati.
func SeedMembersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file member:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var seeds []MemberSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	var fresh []model.GymMemberModel
	for _, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.Email))
		if email != "" {
			var n int64
			if err := db.Model(&model.GymMemberModel{}).
				Where("gym_member_gym_id = ? AND gym_member_email = ?", s.GymID, email).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				log.Printf("ℹ️ Member '%s' sudah ada, dilewati.", email)
				continue
			}
		}

		m := model.GymMemberModel{
			GymMemberGymID:            s.GymID,
			GymMemberUserID:           s.UserID,
			GymMemberName:             strings.TrimSpace(s.Name),
			GymMemberMembershipStart:  parseDate(s.MembershipStart),
			GymMemberMembershipExpiry: parseDate(s.MembershipExpiry),
			GymMemberRemainingClasses: s.RemainingClasses,
		}
		if email != "" {
			m.GymMemberEmail = &email
		}
		fresh = append(fresh, m)
	}

	if len(fresh) == 0 {
		log.Println("ℹ️ Tidak ada member baru untuk diinsert.")
		return nil
	}
	if err := db.Create(&fresh).Error; err != nil {
		return fmt.Errorf("bulk insert gym_members: %w", err)
	}
	log.Printf("✅ Berhasil insert %d member", len(fresh))
	return nil
}
