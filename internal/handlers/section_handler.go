package handlers

import (
	"encoding/json"

	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/biostackhq/biostack/internal/services"
	"github.com/gofiber/fiber/v2"
	fsession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

type SectionHandler struct {
	sectionService *services.SectionService
	profileService *services.ProfileService
	store          *fsession.Store
}

func NewSectionHandler(sectionService *services.SectionService, profileService *services.ProfileService, store *fsession.Store) *SectionHandler {
	return &SectionHandler{sectionService: sectionService, profileService: profileService, store: store}
}

// List handles GET /sections for the active profile. Disabled sections are
// included so the owner can manage them.
func (h *SectionHandler) List(c *fiber.Ctx) error {
	_, profile, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	sections, err := h.sectionService.List(profile.ID, true)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.SectionResponse, len(sections))
	for i := range sections {
		resp[i] = sectionResponse(&sections[i])
	}
	return c.JSON(resp)
}

// Get handles GET /sections/:id — the section with its payload flattened back
// into form fields for editing.
func (h *SectionHandler) Get(c *fiber.Ctx) error {
	_, profile, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "section id")
	}

	section, err := h.sectionService.Get(profile.ID, sectionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(services.DecodeSection(section))
}

// Prefill handles GET /sections/prefill/personal — a PERSONAL section request
// pre-populated from the account's details.
func (h *SectionHandler) Prefill(c *fiber.Ctx) error {
	userID, _, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	req, err := h.sectionService.PrefillPersonal(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// Upsert handles POST /sections. Singleton types (ABOUT, PERSONAL) update in
// place; everything else appends. A PERSONAL submission may carry a profile
// image in the same multipart form.
func (h *SectionHandler) Upsert(c *fiber.Ctx) error {
	userID, profile, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	var req dto.SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if req.SectionType == models.SectionPersonal {
		if _, ferr := c.FormFile("image"); ferr == nil {
			imageURL, uerr := saveProfileImage(c, profile.ID)
			if uerr != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Error: true, Message: uerr.Error(),
				})
			}
			if err := h.profileService.UpdateImage(userID, profile.ID, imageURL); err != nil {
				return respondError(c, err)
			}
		}
	}

	section, err := h.sectionService.Upsert(profile.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sectionResponse(section))
}

// Reorder handles POST /sections/reorder.
func (h *SectionHandler) Reorder(c *fiber.Ctx) error {
	_, profile, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.sectionService.Reorder(profile.ID, req.SectionIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Sections reordered"})
}

// Delete handles POST /sections/:id/delete.
func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	_, profile, err := h.activeProfile(c)
	if err != nil {
		return err
	}

	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "section id")
	}

	if err := h.sectionService.Delete(profile.ID, sectionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NoticeResponse{Message: "Section deleted"})
}

func (h *SectionHandler) activeProfile(c *fiber.Ctx) (uuid.UUID, *models.Profile, error) {
	ph := &ProfileHandler{profileService: h.profileService, store: h.store}
	return ph.active(c)
}

func sectionResponse(s *models.ProfileSection) dto.SectionResponse {
	return dto.SectionResponse{
		ID:          s.ID,
		SectionType: s.SectionType,
		Title:       s.Title,
		Data:        json.RawMessage(s.Data),
		IsEnabled:   s.IsEnabled,
		Order:       s.Order,
		CreatedAt:   s.CreatedAt,
	}
}
