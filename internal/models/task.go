package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

var taskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical}

// IsValid reports whether p is one of the known priorities.
func (p TaskPriority) IsValid() bool {
	for _, known := range taskPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// ParseTaskPriority matches s case-insensitively against the known priorities.
func ParseTaskPriority(s string) (TaskPriority, bool) {
	for _, known := range taskPriorities {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return TaskPriority(s), false
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
	TaskStatusOnHold     TaskStatus = "OnHold"
)

var taskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled, TaskStatusOnHold}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	for _, known := range taskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseTaskStatus matches s case-insensitively against the known statuses.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	for _, known := range taskStatuses {
		if strings.EqualFold(string(known), strings.TrimSpace(s)) {
			return known, true
		}
	}
	return TaskStatus(s), false
}

type TaskRequest struct {
	BaseModel
	Title            string       `gorm:"type:varchar(200);not null" json:"title"`
	Description      string       `gorm:"type:text;not null" json:"description"`
	Priority         TaskPriority `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	Status           TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	DueDate          *time.Time   `json:"due_date"`
	CompletedAt      *time.Time   `json:"completed_at"`
	CreatedByUserID  uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"created_by_user_id"`
	AssignedToUserID uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"assigned_to_user_id"`

	// Relations
	CreatedByUser  User          `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:RESTRICT" json:"-"`
	AssignedToUser User          `gorm:"foreignKey:AssignedToUserID;constraint:OnDelete:RESTRICT" json:"-"`
	Comments       []TaskComment `gorm:"foreignKey:TaskRequestID;constraint:OnDelete:CASCADE" json:"-"`
}
