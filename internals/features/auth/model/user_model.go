package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is an authentication principal of the local identity provider.
// Its ID doubles as the profile ID for login-capable accounts.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string    `gorm:"size:255;unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	EmailConfirmed bool      `gorm:"not null;default:false" json:"email_confirmed"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
