package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a member of one of the footwear teams
type User struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	ExternalID *string   `gorm:"uniqueIndex;size:128" json:"external_id,omitempty"` // identity provider subject
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       UserRole  `gorm:"not null;default:'merchandiser';size:20" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
