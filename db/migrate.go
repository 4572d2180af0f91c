package db

import (
	"fmt"

	"github.com/kishandholakiya1027/invoice-be/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date. pgcrypto provides gen_random_uuid for
// the uuid primary keys.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Invoice{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
