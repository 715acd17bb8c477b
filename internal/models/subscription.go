package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// Subscription is one-to-one with User. Billing itself lives outside this
// service; only the derived pro flag is consumed here (profile quota, premium
// slug editing, premium themes).
type Subscription struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Plan      string     `gorm:"size:20;not null;default:'FREE'" json:"plan"`
	Status    string     `gorm:"size:20;not null;default:'active'" json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsPro reports whether the subscription currently grants paid features.
// False for the free plan, an inactive status, or a lapsed expiry.
func (s *Subscription) IsPro() bool {
	if s.Plan != PlanPro || s.Status != "active" {
		return false
	}
	if s.ExpiresAt != nil && time.Now().After(*s.ExpiresAt) {
		return false
	}
	return true
}
