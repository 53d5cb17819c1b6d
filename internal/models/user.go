package models

import "time"

type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether the role is one of the supported values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(120);not null;index" json:"name"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations. Neither is owning: deleting a user nullifies the
	// back-references instead of cascading.
	CreatedProjects []Project `gorm:"foreignKey:CreatedBy" json:"-"`
	AssignedTasks   []Task    `gorm:"foreignKey:AssignedTo" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u User) PrimaryKey() uint {
	return u.ID
}

func (User) DefaultOrdering() string {
	return "users.id ASC"
}
