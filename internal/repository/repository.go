package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
)

// Preload names for TaskRequest relations.
const (
	PreloadCreatedBy  = "CreatedByUser"
	PreloadAssignedTo = "AssignedToUser"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a non-deleted user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// List lists non-deleted users ordered by last name, then first name
	List(ctx context.Context) ([]models.User, error)

	// ExistsByEmail reports whether a non-deleted user has the email, ignoring letter case
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Exists reports whether a non-deleted user has the ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TaskRequestRepository defines the interface for task request data access
type TaskRequestRepository interface {
	// Create creates a new task request
	Create(ctx context.Context, task *models.TaskRequest) error

	// FindByID finds a task request by ID with optional preloading
	FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*models.TaskRequest, error)

	// List lists every non-deleted task, newest first
	List(ctx context.Context) ([]models.TaskRequest, error)

	// ListByAssignedUser lists tasks assigned to a user, newest first
	ListByAssignedUser(ctx context.Context, userID uuid.UUID) ([]models.TaskRequest, error)

	// ListByCreatedUser lists tasks created by a user, newest first
	ListByCreatedUser(ctx context.Context, userID uuid.UUID) ([]models.TaskRequest, error)

	// Update saves the task's own columns
	Update(ctx context.Context, task *models.TaskRequest) error

	// Delete soft deletes a task and its comments
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a non-deleted task has the ID
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// TaskCommentRepository defines the interface for task comment data access
type TaskCommentRepository interface {
	Create(ctx context.Context, comment *models.TaskComment) error

	// ListByTask lists a task's comments with their authors, oldest first
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.TaskComment, error)
}

// FileAttachmentRepository defines the interface for file metadata access
type FileAttachmentRepository interface {
	Create(ctx context.Context, file *models.FileAttachment) error

	// FindByID finds a non-deleted attachment, optionally with its uploader
	FindByID(ctx context.Context, id uuid.UUID, withUploader bool) (*models.FileAttachment, error)

	// ListByEntity lists an entity's attachments with uploaders, newest first
	ListByEntity(ctx context.Context, entityType models.EntityType, entityID uuid.UUID) ([]models.FileAttachment, error)

	// Delete soft deletes an attachment
	Delete(ctx context.Context, file *models.FileAttachment) error
}
