package database

import (
	"log"

	"echopoint-app/internal/domain/signups"
	"echopoint-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and migrates all domain models.
// The returned handle is the only one in the process; main passes it
// explicitly to every component that needs persistence.
func Init(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Required for gen_random_uuid() defaults on uuid columns.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
	return db
}

// Migrate runs schema migration for every domain model. Split out so tests
// can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.Profile{},
		&users.VerificationToken{},

		&signups.EventSignup{},
		&signups.WebhookEvent{},
	)
}
