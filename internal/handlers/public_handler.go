package handlers

import (
	"log/slog"

	"github.com/biostackhq/biostack/internal/services"
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

type PublicHandler struct {
	renderService    *services.RenderService
	analyticsService *services.AnalyticsService
	store            *fsession.Store
}

func NewPublicHandler(renderService *services.RenderService, analyticsService *services.AnalyticsService, store *fsession.Store) *PublicHandler {
	return &PublicHandler{renderService: renderService, analyticsService: analyticsService, store: store}
}

// RenderProfile handles GET /:username/:slug — the public page. Private and
// missing profiles are indistinguishable to the visitor.
func (h *PublicHandler) RenderProfile(c *fiber.Ctx) error {
	model, err := h.renderService.Render(c.Params("username"), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	// View tracking must never break the page.
	sess, serr := h.store.Get(c)
	if serr == nil {
		if err := h.analyticsService.RecordView(model.ProfileID, c.IP(), sess); err != nil {
			slog.Warn("record view failed", "profile_id", model.ProfileID, "error", err)
		}
		if err := sess.Save(); err != nil {
			slog.Warn("session save failed", "error", err)
		}
	}

	return c.Render(model.Template, model)
}

// LinkClick handles GET /link-click/:section_id — records the click and
// redirects to the link's target.
func (h *PublicHandler) LinkClick(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("section_id"))
	if err != nil {
		return badParam(c, "section id")
	}

	target, err := h.analyticsService.RecordClick(sectionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// PreviewTheme handles GET /themes/preview/:theme_id — renders a theme with
// demo content. Nothing is persisted and no analytics are recorded.
func (h *PublicHandler) PreviewTheme(c *fiber.Ctx) error {
	themeID, err := uuid.Parse(c.Params("theme_id"))
	if err != nil {
		return badParam(c, "theme id")
	}

	model, err := h.renderService.Preview(themeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Render(model.Template, model)
}

// RenderJSON handles GET /api/public/:username/:slug — the page payload for
// API consumers, without view tracking.
func (h *PublicHandler) RenderJSON(c *fiber.Ctx) error {
	model, err := h.renderService.Render(c.Params("username"), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model)
}
