package models

import (
	"strings"

	"github.com/google/uuid"
)

// EntityType names the kind of record a file is attached to.
type EntityType string

const (
	EntityTypeTaskRequest EntityType = "TaskRequest"
	EntityTypeUser        EntityType = "User"
)

var entityTypes = []EntityType{EntityTypeTaskRequest, EntityTypeUser}

func (t EntityType) IsValid() bool {
	for _, known := range entityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEntityType matches s case-insensitively ("taskrequest", "User", ...).
func ParseEntityType(s string) (EntityType, bool) {
	for _, known := range entityTypes {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return EntityType(s), false
}

type FileAttachment struct {
	BaseModel
	FileName      string     `gorm:"type:varchar(255);not null" json:"file_name"`
	S3Key         string     `gorm:"column:s3_key;type:varchar(500);uniqueIndex;not null" json:"s3_key"`
	ContentType   string     `gorm:"type:varchar(100);not null" json:"content_type"`
	FileSizeBytes int64      `gorm:"not null" json:"file_size_bytes"`
	EntityType    EntityType `gorm:"type:varchar(20);not null;index:idx_file_attachments_entity,priority:1" json:"entity_type"`
	EntityID      uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_file_attachments_entity,priority:2" json:"entity_id"`
	UploadedBy    uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"uploaded_by"`

	// Relations
	UploadedByUser *User `gorm:"foreignKey:UploadedBy;constraint:OnDelete:RESTRICT" json:"-"`
}
