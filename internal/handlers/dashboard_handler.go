package handlers

import (
	"strconv"

	"github.com/biostackhq/biostack/internal/services"
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
)

type DashboardHandler struct {
	analyticsService *services.AnalyticsService
	profileService   *services.ProfileService
	store            *fsession.Store
}

func NewDashboardHandler(analyticsService *services.AnalyticsService, profileService *services.ProfileService, store *fsession.Store) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService, profileService: profileService, store: store}
}

// Stats handles GET /api/dashboard for the active profile. The window defaults
// to 7 days; ?days=30 widens it.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	ph := &ProfileHandler{profileService: h.profileService, store: h.store}
	_, profile, err := ph.active(c)
	if err != nil {
		return err
	}

	days, _ := strconv.Atoi(c.Query("days"))

	resp, err := h.analyticsService.Aggregate(profile.ID, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
