package handlers

import (
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if _, err := h.feedbackService.Create(&req); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NoticeResponse{Message: "Feedback received"})
}
