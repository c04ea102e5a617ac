package model

import "time"

// Task statuses. Other values may be stored, but only "completed" is
// distinguished by consumers (completion rate, streak).
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// DefaultCategory is used when a task is created without a category label.
const DefaultCategory = "general"

// Task is a single tracked item owned by a user.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"index" json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Category    string     `json:"category"`
	Status      string     `gorm:"default:pending" json:"status"`
	PrepSteps   []PrepStep `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"prep_steps"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
