package constants

import "time"

// Request identity
const (
	HeaderUserID     = "X-User-Id"
	ContextKeyUserID = "user_id"
)

// MaxUploadRequestBytes bounds an upload body when no limit is configured.
const MaxUploadRequestBytes = 10 * 1024 * 1024

// File storage defaults
const (
	DefaultMaxFileSizeBytes = 10 * 1024 * 1024
	DefaultPresignExpiry    = 60 * time.Minute
	ObjectKeyPrefix         = "uploads"
	ObjectDeleteTimeout     = 30 * time.Second
)

// DefaultAllowedExtensions is used when no allow-list is configured.
var DefaultAllowedExtensions = []string{".pdf", ".docx", ".xlsx", ".png", ".jpg", ".jpeg", ".txt"}
