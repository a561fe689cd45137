package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gigflow/internal/models"
)

// Connect opens the Postgres connection used by the entity store.
// TranslateError turns driver unique-violation errors into
// gorm.ErrDuplicatedKey, which the store maps to conflicts.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates or updates the schema for all entities.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Gig{},
		&models.Bid{},
	)
}
