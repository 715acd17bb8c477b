package services

import (
	"github.com/biostackhq/biostack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubscriptionService reads plan state. Billing happens elsewhere; this
// service only answers "is this user pro right now".
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// IsPro reports whether the user's subscription currently grants paid
// features. A missing subscription row counts as free.
func (s *SubscriptionService) IsPro(userID uuid.UUID) bool {
	var sub models.Subscription
	if err := s.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return false
	}
	return sub.IsPro()
}

// Get returns the user's subscription record.
func (s *SubscriptionService) Get(userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
