package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback subjects.
const (
	FeedbackSuggestion = "suggestion"
	FeedbackBug        = "bug"
	FeedbackOther      = "other"
)

func ValidFeedbackSubject(subject string) bool {
	return subject == FeedbackSuggestion || subject == FeedbackBug || subject == FeedbackOther
}

// Feedback is a simple intake record from the support form.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:20;not null;default:'suggestion'" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
