package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
)

// Theme is a catalog entry pointing at a public page template. The catalog is
// seeded at boot and read-only at runtime.
type Theme struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Slug         string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	TemplateName string    `gorm:"size:255;not null" json:"template_name"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail_url"`
	IsPremium    bool      `gorm:"default:false" json:"is_premium"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *Theme) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Profile is one public page owned by a user. The slug is unique within the
// owner's namespace, not globally (see config.SlugScope for the collision
// discipline).
type Profile struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_profiles_user_slug" json:"user_id"`
	FullName   string     `gorm:"size:255" json:"full_name"`
	Bio        string     `gorm:"type:text" json:"bio"`
	ImageURL   string     `gorm:"size:500" json:"image_url"`
	Slug       string     `gorm:"size:150;not null;uniqueIndex:idx_profiles_user_slug" json:"slug"`
	Visibility string     `gorm:"size:10;not null;default:'PRIVATE'" json:"visibility"`
	ThemeID    *uuid.UUID `gorm:"type:uuid;index" json:"theme_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Theme      *Theme     `gorm:"foreignKey:ThemeID" json:"theme,omitempty"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
