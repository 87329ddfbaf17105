package entity

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the catalog schema. The partial unique index is what
// actually enforces live (name, owner) uniqueness; the pre-checks in the
// store layer are only an early exit.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Dataset{}, &DatasetTag{}, &QualityLog{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uniq_datasets_name_owner_live ON datasets (name, owner) WHERE is_deleted = false").Error; err != nil {
		return fmt.Errorf("failed to create unique index on datasets: %w", err)
	}

	return nil
}
