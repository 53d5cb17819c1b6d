package models

import "time"

type Project struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null;index" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedBy   *uint     `gorm:"index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator *User  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL" json:"-"`
	Tasks   []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string {
	return "projects"
}

func (p Project) PrimaryKey() uint {
	return p.ID
}

func (Project) DefaultOrdering() string {
	return "projects.id ASC"
}
