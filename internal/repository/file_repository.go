package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFileAttachmentRepository is a GORM implementation of FileAttachmentRepository
type GormFileAttachmentRepository struct {
	db *gorm.DB
}

// NewFileAttachmentRepository creates a new FileAttachmentRepository
func NewFileAttachmentRepository(db *gorm.DB) FileAttachmentRepository {
	return &GormFileAttachmentRepository{db: db}
}

func (r *GormFileAttachmentRepository) Create(ctx context.Context, file *models.FileAttachment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(file).Error
}

func (r *GormFileAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID, withUploader bool) (*models.FileAttachment, error) {
	var file models.FileAttachment
	query := r.db.WithContext(ctx)
	if withUploader {
		query = query.Preload("UploadedByUser")
	}
	if err := query.Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *GormFileAttachmentRepository) ListByEntity(ctx context.Context, entityType models.EntityType, entityID uuid.UUID) ([]models.FileAttachment, error) {
	files := []models.FileAttachment{}
	if err := r.db.WithContext(ctx).
		Preload("UploadedByUser").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Delete marks the attachment deleted; the row stays in the table.
func (r *GormFileAttachmentRepository) Delete(ctx context.Context, file *models.FileAttachment) error {
	res := r.db.WithContext(ctx).Where("id = ?", file.ID).Delete(&models.FileAttachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
