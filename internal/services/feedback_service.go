package services

import (
	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"gorm.io/gorm"
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// Create stores a feedback record after field validation.
func (s *FeedbackService) Create(req *dto.FeedbackRequest) (*models.Feedback, error) {
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "Name is required"
	}
	if req.Email == "" {
		fields["email"] = "Email is required"
	}
	if req.Message == "" {
		fields["message"] = "Message is required"
	}
	subject := req.Subject
	if subject == "" {
		subject = models.FeedbackSuggestion
	} else if !models.ValidFeedbackSubject(subject) {
		fields["subject"] = "Subject must be suggestion, bug or other"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	feedback := models.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Subject: subject,
		Message: req.Message,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}
