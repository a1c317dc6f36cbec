package seeds

import (
	"log"
	"path/filepath"

	"gorm.io/gorm"

	"gymku_backend/internals/seeds/gym/classes"
	"gymku_backend/internals/seeds/gym/members"
)

// RunAllSeeds: dir = root folder seeds (default "internals/seeds").
func RunAllSeeds(db *gorm.DB, dir string) error {
	//* Gym
	if err := classes.SeedClassesFromJSON(db, filepath.Join(dir, "gym/classes/data_classes.json")); err != nil {
		return err
	}
	if err := members.SeedMembersFromJSON(db, filepath.Join(dir, "gym/members/data_members.json")); err != nil {
		return err
	}

	log.Println("🌱 Seed selesai")
	return nil
}
