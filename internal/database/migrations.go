package database

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.TaskRequest{},
		&models.TaskComment{},
		&models.FileAttachment{},
	}
}

func Migrate(db *gorm.DB) error {
	log.Info("Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	log.Info("Database migrations completed")
	return nil
}
