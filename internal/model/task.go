package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a unit of work owned by exactly one user.
type Task struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title          string     `json:"title" gorm:"size:255;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Status         TaskStatus `json:"status" gorm:"size:50;not null;default:'pending';index"`
	AssignedUserID uuid.UUID  `json:"assigned_user_id" gorm:"type:char(36);not null;index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	AssignedUser *User `json:"assigned_user,omitempty" gorm:"foreignKey:AssignedUserID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
