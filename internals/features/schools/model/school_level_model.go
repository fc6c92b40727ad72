package model

import (
	"time"

	"github.com/google/uuid"
)

// SchoolLevelModel is a named subdivision of a school ("Primario",
// "Secundario"). Owned by exactly one school.
type SchoolLevelModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CUE       *string   `gorm:"column:cue;size:20" json:"cue,omitempty"`
	Diegep    *string   `gorm:"size:20" json:"diegep,omitempty"`
	KeyProv   *string   `gorm:"column:key_prov;size:20" json:"key_prov,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SchoolLevelModel) TableName() string {
	return "school_levels"
}
