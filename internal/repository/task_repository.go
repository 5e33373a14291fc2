package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRequestRepository is a GORM implementation of TaskRequestRepository
type GormTaskRequestRepository struct {
	db *gorm.DB
}

// NewTaskRequestRepository creates a new TaskRequestRepository
func NewTaskRequestRepository(db *gorm.DB) TaskRequestRepository {
	return &GormTaskRequestRepository{db: db}
}

// Create creates a new task request
func (r *GormTaskRequestRepository) Create(ctx context.Context, task *models.TaskRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task request by ID with optional preloading
func (r *GormTaskRequestRepository) FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*models.TaskRequest, error) {
	var task models.TaskRequest
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List lists all task requests
func (r *GormTaskRequestRepository) List(ctx context.Context) ([]models.TaskRequest, error) {
	var tasks []models.TaskRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByAssignedUser lists tasks assigned to a user
func (r *GormTaskRequestRepository) ListByAssignedUser(ctx context.Context, userID uuid.UUID) ([]models.TaskRequest, error) {
	var tasks []models.TaskRequest
	if err := r.db.WithContext(ctx).
		Where("assigned_to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByCreatedUser lists tasks created by a user
func (r *GormTaskRequestRepository) ListByCreatedUser(ctx context.Context, userID uuid.UUID) ([]models.TaskRequest, error) {
	var tasks []models.TaskRequest
	if err := r.db.WithContext(ctx).
		Where("created_by_user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task request
func (r *GormTaskRequestRepository) Update(ctx context.Context, task *models.TaskRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete soft deletes a task request together with its comments
func (r *GormTaskRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_request_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.TaskRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Exists checks whether a task request exists
func (r *GormTaskRequestRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TaskRequest{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
