package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel anchors an account. For login-capable accounts the ID equals
// the identity-provider principal ID; managed (non-login) persons get a fresh
// UUID. PersonID is never null.
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"person_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Person *PersonModel `gorm:"foreignKey:PersonID" json:"person,omitempty"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
