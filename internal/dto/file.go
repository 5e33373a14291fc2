package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
)

// FileUploadedMessage is returned with every successful upload.
const FileUploadedMessage = "File uploaded successfully"

// FileMetadataDTO describes a stored attachment. DownloadURL is only set on
// single-file reads.
type FileMetadataDTO struct {
	ID             uuid.UUID         `json:"id"`
	FileName       string            `json:"file_name"`
	ContentType    string            `json:"content_type"`
	FileSizeBytes  int64             `json:"file_size_bytes"`
	EntityType     models.EntityType `json:"entity_type"`
	EntityID       uuid.UUID         `json:"entity_id"`
	UploadedBy     uuid.UUID         `json:"uploaded_by"`
	UploadedByName *string           `json:"uploaded_by_name"`
	CreatedAt      time.Time         `json:"created_at"`
	DownloadURL    *string           `json:"download_url,omitempty"`
}

// FileUploadResultDTO acknowledges an upload
type FileUploadResultDTO struct {
	FileID        uuid.UUID `json:"file_id"`
	FileName      string    `json:"file_name"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	Message       string    `json:"message"`
}

// ToFileMetadataDTO converts an attachment; the uploader name is nil when
// the uploader was not loaded.
func ToFileMetadataDTO(file models.FileAttachment) FileMetadataDTO {
	out := FileMetadataDTO{
		ID:            file.ID,
		FileName:      file.FileName,
		ContentType:   file.ContentType,
		FileSizeBytes: file.FileSizeBytes,
		EntityType:    file.EntityType,
		EntityID:      file.EntityID,
		UploadedBy:    file.UploadedBy,
		CreatedAt:     file.CreatedAt,
	}
	if file.UploadedByUser != nil {
		name := file.UploadedByUser.FullName()
		out.UploadedByName = &name
	}
	return out
}
