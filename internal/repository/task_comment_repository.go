package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskCommentRepository is a GORM implementation of TaskCommentRepository
type GormTaskCommentRepository struct {
	db *gorm.DB
}

// NewTaskCommentRepository creates a new TaskCommentRepository
func NewTaskCommentRepository(db *gorm.DB) TaskCommentRepository {
	return &GormTaskCommentRepository{db: db}
}

func (r *GormTaskCommentRepository) Create(ctx context.Context, comment *models.TaskComment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

func (r *GormTaskCommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error) {
	var comments []models.TaskComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_request_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
