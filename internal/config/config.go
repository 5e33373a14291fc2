package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gotify/configor"
	"github.com/pkg/errors"
	"github.com/yukikurage/pastry-manager-api/internal/constants"
)

type Config struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080" env:"APP_PORT"`
		GinMode    string `default:"debug" env:"GIN_MODE"`
	}
	Database struct {
		Driver         string `default:"postgres" env:"DB_DRIVER"`
		Host           string `default:"localhost" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"pastry_manager" env:"DB_NAME"`
		User           string `default:"pastry" env:"DB_USER"`
		Password       string `default:"pastry" env:"DB_PASSWORD"`
		SSLMode        string `default:"disable" env:"DB_SSLMODE"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint             string `default:"localhost:9000" env:"S3_ENDPOINT"`
		AccessKeyID          string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey      string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName           string `default:"pastry-manager-files" env:"S3_BUCKET_NAME"`
		Region               string `default:"us-east-1" env:"S3_REGION"`
		UseSSL               *bool  `default:"false" env:"S3_USE_SSL"`
		PresignExpiryMinutes int    `default:"60" env:"S3_PRESIGN_EXPIRY_MINUTES"`
	}
	FileUpload struct {
		MaxFileSizeBytes int64 `default:"10485760" env:"FILE_MAX_SIZE_BYTES"`
		// yaml list, e.g. FILE_ALLOWED_EXTENSIONS="[.pdf, .png]"
		AllowedExtensions []string `env:"FILE_ALLOWED_EXTENSIONS"`
	}
	Log struct {
		Level string `default:"info" env:"LOG_LEVEL"`
	}
}

func configFiles() []string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return []string{path}
	}
	return []string{"config.yml"}
}

// Load reads config.yml (if present) and environment overrides.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := configor.New(&configor.Config{}).Load(cfg, configFiles()...); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.FileUpload.MaxFileSizeBytes <= 0 {
		c.FileUpload.MaxFileSizeBytes = constants.DefaultMaxFileSizeBytes
	}
	if len(c.FileUpload.AllowedExtensions) == 0 {
		c.FileUpload.AllowedExtensions = append([]string(nil), constants.DefaultAllowedExtensions...)
	}
	for i, ext := range c.FileUpload.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.FileUpload.AllowedExtensions[i] = ext
	}
	if c.S3.PresignExpiryMinutes <= 0 {
		c.S3.PresignExpiryMinutes = int(constants.DefaultPresignExpiry / time.Minute)
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.S3.BucketName == "" {
		return errors.New("S3 bucket name is not configured")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.ListenAddr, c.App.Port)
}

// PresignExpiry is the lifetime of generated download links.
func (c *Config) PresignExpiry() time.Duration {
	return time.Duration(c.S3.PresignExpiryMinutes) * time.Minute
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.App.GinMode != "release"
}

func boolValue(p *bool) bool {
	return p != nil && *p
}

// MigrateOnStart reports whether migrations run at startup.
func (c *Config) MigrateOnStart() bool {
	return boolValue(c.Database.MigrateOnStart)
}

// DatabaseDebug reports whether SQL statements are logged.
func (c *Config) DatabaseDebug() bool {
	return boolValue(c.Database.DebugMode)
}

// S3UseSSL reports whether the object storage endpoint uses TLS.
func (c *Config) S3UseSSL() bool {
	return boolValue(c.S3.UseSSL)
}
