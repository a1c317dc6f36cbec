package main

import (
	"flag"
	"log"
	_ "time/tzdata"

	"gymku_backend/internals/configs"
	database "gymku_backend/internals/databases"
	"gymku_backend/internals/seeds"
)

func main() {
	seed := flag.Bool("seed", false, "isi data contoh gym setelah migrasi")
	seedDir := flag.String("seed-dir", "internals/seeds", "folder data seed (JSON)")
	flag.Parse()

	cfg := configs.LoadEnv()
	db := configs.InitSeederDB(cfg)
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}

	if *seed {
		if err := seeds.RunAllSeeds(db, *seedDir); err != nil {
			log.Fatalf("❌ Seed gagal: %v", err)
		}
	}
}
