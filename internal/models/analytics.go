package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileView is an append-only view event. Rows are never updated or deleted
// by the application; they are only counted.
type ProfileView struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Profile   Profile   `gorm:"foreignKey:ProfileID" json:"-"`
}

func (v *ProfileView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// LinkClick is an append-only click event on a LINKS section.
type LinkClick struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"section_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	Section   ProfileSection `gorm:"foreignKey:SectionID" json:"-"`
}

func (c *LinkClick) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
