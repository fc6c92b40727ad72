package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolModel is the tenant boundary. IsActive gates whether the school can
// receive new assignments.
type SchoolModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Address   *string   `gorm:"size:255" json:"address,omitempty"`
	City      *string   `gorm:"size:100" json:"city,omitempty"`
	Province  *string   `gorm:"size:100" json:"province,omitempty"`
	Phone     *string   `gorm:"size:50" json:"phone,omitempty"`
	CUE       *string   `gorm:"column:cue;size:20" json:"cue,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
