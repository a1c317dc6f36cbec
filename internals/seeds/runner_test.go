package seeds

import (
	"testing"

	"gymku_backend/internals/databases/dbtest"
	sessModel "gymku_backend/internals/features/gym/class_sessions/model"
	classModel "gymku_backend/internals/features/gym/classes/model"
	memberModel "gymku_backend/internals/features/gym/members/model"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := dbtest.NewSQLite(t)

	for i := 0; i < 2; i++ {
		if err := RunAllSeeds(db, "."); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	var classes, sessions, members int64
	db.Model(&classModel.GymClassModel{}).Count(&classes)
	db.Model(&sessModel.ClassSessionModel{}).Count(&sessions)
	db.Model(&memberModel.GymMemberModel{}).Count(&members)

	if classes != 2 || sessions != 5 || members != 2 {
		t.Fatalf("classes=%d sessions=%d members=%d", classes, sessions, members)
	}

	var yogaSat sessModel.ClassSessionModel
	if err := db.Where("class_session_day_of_week = ?", 6).First(&yogaSat).Error; err != nil {
		t.Fatal(err)
	}
	if yogaSat.ClassSessionCapacity != 20 || yogaSat.ClassSessionNextOccurrenceDate == nil {
		t.Fatalf("unexpected saturday session: %+v", yogaSat)
	}
}
