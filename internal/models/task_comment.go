package models

import "github.com/google/uuid"

type TaskComment struct {
	BaseModel
	Content       string    `gorm:"type:varchar(1000);not null" json:"content"`
	TaskRequestID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"task_request_id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}
