package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/pastry-manager-api/internal/models"
)

// TaskRequestDTO represents a task request in API responses
type TaskRequestDTO struct {
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Priority           models.TaskPriority `json:"priority"`
	Status             models.TaskStatus   `json:"status"`
	DueDate            *time.Time          `json:"due_date"`
	CompletedAt        *time.Time          `json:"completed_at"`
	CreatedByUserID    uuid.UUID           `json:"created_by_user_id"`
	CreatedByUserName  string              `json:"created_by_user_name"`
	AssignedToUserID   uuid.UUID           `json:"assigned_to_user_id"`
	AssignedToUserName string              `json:"assigned_to_user_name"`
	CreatedAt          time.Time           `json:"created_at"`
}

// TaskCommentDTO represents a comment in API responses
type TaskCommentDTO struct {
	ID            uuid.UUID `json:"id"`
	TaskRequestID uuid.UUID `json:"task_request_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateTaskRequestRequest is the body of POST /api/taskrequests.
// Priority and the due date are parsed by the handler so bad values
// surface as validation messages.
type CreateTaskRequestRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Priority         string     `json:"priority"`
	AssignedToUserID string     `json:"assigned_to_user_id"`
	DueDate          *time.Time `json:"due_date"`
}

// UpdateTaskStatusRequest is the body of PATCH /api/taskrequests/{id}/status
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// AddTaskCommentRequest is the body of POST /api/taskrequests/{id}/comments
type AddTaskCommentRequest struct {
	Content string `json:"content"`
}

// ToTaskRequestDTO converts a task and the display names of its users
func ToTaskRequestDTO(task models.TaskRequest, createdByName, assignedToName string) TaskRequestDTO {
	return TaskRequestDTO{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		Priority:           task.Priority,
		Status:             task.Status,
		DueDate:            task.DueDate,
		CompletedAt:        task.CompletedAt,
		CreatedByUserID:    task.CreatedByUserID,
		CreatedByUserName:  createdByName,
		AssignedToUserID:   task.AssignedToUserID,
		AssignedToUserName: assignedToName,
		CreatedAt:          task.CreatedAt,
	}
}

// ToTaskCommentDTO converts a comment with its preloaded author
func ToTaskCommentDTO(comment models.TaskComment) TaskCommentDTO {
	return TaskCommentDTO{
		ID:            comment.ID,
		TaskRequestID: comment.TaskRequestID,
		UserID:        comment.UserID,
		UserName:      comment.User.FullName(),
		Content:       comment.Content,
		CreatedAt:     comment.CreatedAt,
	}
}
