package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCanceled   TaskStatus = "canceled"
)

// Valid reports whether the status is one of the supported values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCanceled:
		return true
	}
	return false
}

type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(120);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	ProjectID   uint       `gorm:"not null;index" json:"project_id"`
	AssignedTo  *uint      `gorm:"index" json:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t Task) PrimaryKey() uint {
	return t.ID
}

func (Task) DefaultOrdering() string {
	return "tasks.id ASC"
}
