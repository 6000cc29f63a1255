package persistence

import (
	"fmt"

	"github.com/juliabase/juliabase/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all LIMS tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.UserDetailsModel{},
		&models.MySampleModel{},
		&models.PermissionModel{},
		&models.TopicModel{},
		&models.TopicMembershipModel{},
		&models.SampleModel{},
		&models.SampleAliasModel{},
		&models.ProcessModel{},
		&models.ProcessSampleModel{},
		&models.DepositionModel{},
		&models.LayerModel{},
		&models.FeedEntryModel{},
		&models.FeedRecipientModel{},
		&models.StatusMessageModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
