package database

import (
	"context"
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the GORM driver for the configured database.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	db := cfg.Database
	switch db.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s password=%s",
			db.Host, db.Port, db.User, db.Name, db.SSLMode, db.Password)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			db.User, db.Password, db.Host, db.Port, db.Name)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(db.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// Options are the GORM settings shared by the server, the agent and tests.
// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey.
func Options() *gorm.Config {
	return &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
	}
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	opts := Options()
	if cfg.DatabaseDebug() {
		opts.Logger = debugLogger(log.StandardLogger())
	}

	db, err := gorm.Open(dialector, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	log.WithField("driver", cfg.Database.Driver).Info("Database connection established")
	return db, nil
}

// debugLogger traces every statement through logrus so SQL never reaches
// stdout, which the agent uses for its protocol.
func debugLogger(out logger.Writer) logger.Interface {
	return logger.New(out, logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logger.Info,
	})
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
