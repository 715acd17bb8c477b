package handlers

import (
	"github.com/biostackhq/biostack/internal/auth"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/biostackhq/biostack/internal/services"
	"github.com/biostackhq/biostack/internal/session"
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	store          *fsession.Store
}

func NewProfileHandler(profileService *services.ProfileService, store *fsession.Store) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, store: store}
}

// List handles GET /profiles — the owner's profiles plus which one is active.
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, err)
	}

	profiles, err := h.profileService.ListByUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	var activeID *uuid.UUID
	if active, err := h.profileService.GetActive(sess, userID); err == nil && active != nil {
		activeID = &active.ID
	}
	if err := sess.Save(); err != nil {
		return respondError(c, err)
	}

	resp := dto.ProfileListResponse{ActiveID: activeID, Profiles: make([]dto.ProfileResponse, len(profiles))}
	for i, p := range profiles {
		resp.Profiles[i] = profileResponse(&p, activeID)
	}
	return c.JSON(resp)
}

// Create handles POST /profiles.
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	profile, err := h.profileService.Create(userID, req.FullName, req.Bio)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profileResponse(profile, nil))
}

// Activate handles POST /profiles/:id/activate — binds the active profile in
// the session.
func (h *ProfileHandler) Activate(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "profile id")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.profileService.SetActive(sess, userID, profileID); err != nil {
		return respondError(c, err)
	}
	if err := sess.Save(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Profile activated"})
}

// Delete handles POST /profiles/:id/delete. Deleting the active profile is a
// conflict; switch away first.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "profile id")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.profileService.Delete(sess, userID, profileID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Profile deleted"})
}

// Update handles PUT /profiles/active.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, profile, err := h.active(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	updated, err := h.profileService.Update(userID, profile.ID, req.FullName, req.Bio, req.Visibility)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profileResponse(updated, &updated.ID))
}

// UpdateSlug handles PUT /profiles/active/slug (pro only).
func (h *ProfileHandler) UpdateSlug(c *fiber.Ctx) error {
	userID, profile, err := h.active(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSlugRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	updated, err := h.profileService.UpdateSlug(userID, profile.ID, req.Slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profileResponse(updated, &updated.ID))
}

// UploadImage handles POST /profiles/active/image (multipart).
func (h *ProfileHandler) UploadImage(c *fiber.Ctx) error {
	userID, profile, err := h.active(c)
	if err != nil {
		return err
	}

	imageURL, err := saveProfileImage(c, profile.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if err := h.profileService.UpdateImage(userID, profile.ID, imageURL); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Profile image updated"})
}

// SetTheme handles POST /theme for the active profile.
func (h *ProfileHandler) SetTheme(c *fiber.Ctx) error {
	userID, profile, err := h.active(c)
	if err != nil {
		return err
	}

	var req dto.SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.profileService.SetTheme(userID, profile.ID, req.ThemeID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Theme updated"})
}

// ListThemes handles GET /themes.
func (h *ProfileHandler) ListThemes(c *fiber.Ctx) error {
	themes, err := h.profileService.ListThemes()
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.ThemeResponse, len(themes))
	for i, t := range themes {
		resp[i] = dto.ThemeResponse{
			ID: t.ID, Name: t.Name, Slug: t.Slug,
			ThumbnailURL: t.ThumbnailURL, IsPremium: t.IsPremium,
		}
	}
	return c.JSON(resp)
}

// active resolves the session-bound profile; a 409-style "select a profile"
// response is written when none is bound.
func (h *ProfileHandler) active(c *fiber.Ctx) (uuid.UUID, *models.Profile, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return uuid.Nil, nil, unauthorized(c)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return uuid.Nil, nil, respondError(c, err)
	}

	profile, err := h.profileService.GetActive(sess, userID)
	if err != nil {
		return uuid.Nil, nil, respondError(c, err)
	}
	if profile == nil {
		return uuid.Nil, nil, noActiveProfile(c, sess)
	}
	return userID, profile, nil
}

func noActiveProfile(c *fiber.Ctx, sess session.Values) error {
	if s, ok := sess.(*fsession.Session); ok {
		_ = s.Save()
	}
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
		Error: true, Message: "No active profile selected",
	})
}

func profileResponse(p *models.Profile, activeID *uuid.UUID) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		Bio:        p.Bio,
		ImageURL:   p.ImageURL,
		Slug:       p.Slug,
		Visibility: p.Visibility,
		ThemeID:    p.ThemeID,
		IsActive:   activeID != nil && *activeID == p.ID,
		CreatedAt:  p.CreatedAt,
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func badParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid " + name,
	})
}
