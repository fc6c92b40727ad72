package model

import (
	"time"

	"github.com/google/uuid"
)

// PersonModel holds identity attributes independent of authentication.
// One person maps to at most one profile.
type PersonModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	DocumentNumber *string    `gorm:"size:20" json:"document_number,omitempty"`
	Email          *string    `gorm:"size:255" json:"email,omitempty"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address        *string    `gorm:"size:255" json:"address,omitempty"`
	Phone          *string    `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PersonModel) TableName() string {
	return "persons"
}
