package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RenderService assembles the model a theme template receives for a public
// profile page.
type RenderService struct {
	db       *gorm.DB
	cfg      *config.Config
	sections *SectionService
}

func NewRenderService(db *gorm.DB, cfg *config.Config, sections *SectionService) *RenderService {
	return &RenderService{db: db, cfg: cfg, sections: sections}
}

// Render resolves owner and profile by public address and builds the render
// model. A private profile answers NotFound, same as a missing one, so the
// public surface never confirms existence.
func (s *RenderService) Render(username, profileSlug string) (*dto.RenderModel, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: page", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = s.db.Preload("Theme").
		Where("user_id = ? AND slug = ?", user.ID, profileSlug).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: page", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if profile.Visibility != models.VisibilityPublic {
		return nil, fmt.Errorf("%w: page", apperr.ErrNotFound)
	}

	sections, err := s.sections.List(profile.ID, false)
	if err != nil {
		return nil, err
	}

	template := s.cfg.DefaultThemeTemplate
	if profile.Theme != nil {
		template = profile.Theme.TemplateName
	}

	model := &dto.RenderModel{
		Profile: dto.RenderProfile{
			DisplayName:   profile.FullName,
			Bio:           profile.Bio,
			ImageURL:      profile.ImageURL,
			OwnerUsername: user.Username,
		},
		Template:  template,
		Sections:  renderSections(sections),
		ProfileID: profile.ID,
	}
	return model, nil
}

// Preview builds the render model for an arbitrary theme with synthetic
// profile and section data, for unauthenticated gallery browsing. It reads
// the theme row and nothing else; it never persists anything and skips
// visibility checks entirely.
func (s *RenderService) Preview(themeID uuid.UUID) (*dto.RenderModel, error) {
	var theme models.Theme
	err := s.db.First(&theme, "id = ?", themeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: theme", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	model := &dto.RenderModel{
		Profile: dto.RenderProfile{
			DisplayName:   "Alex Demo",
			Bio:           "Designer, developer and occasional writer. This is a preview profile.",
			ImageURL:      "/static/preview/avatar.png",
			OwnerUsername: "alexdemo",
		},
		Template: theme.TemplateName,
		Sections: previewSections(),
	}
	return model, nil
}

func renderSections(sections []models.ProfileSection) []dto.RenderSection {
	out := make([]dto.RenderSection, len(sections))
	for i, sec := range sections {
		out[i] = dto.RenderSection{
			ID:     sec.ID,
			Type:   sec.SectionType,
			Title:  sec.Title,
			Data:   json.RawMessage(sec.Data),
			Fields: decodeFields(sec.Data),
		}
	}
	return out
}

func decodeFields(data []byte) map[string]any {
	fields := map[string]any{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &fields)
	}
	return fields
}

func previewSections() []dto.RenderSection {
	about, _ := json.Marshal(models.AboutPayload{Content: "Hi! I build things for the web."})
	link, _ := json.Marshal(models.LinkPayload{URL: "https://example.com", Content: "My portfolio"})
	skill, _ := json.Marshal(models.SkillPayload{Name: "Go", Level: "Expert", Content: "Backend services"})
	return []dto.RenderSection{
		{ID: uuid.New(), Type: models.SectionAbout, Title: "About Me", Data: about, Fields: decodeFields(about)},
		{ID: uuid.New(), Type: models.SectionLinks, Title: "Portfolio", Data: link, Fields: decodeFields(link)},
		{ID: uuid.New(), Type: models.SectionSkills, Title: "Go", Data: skill, Fields: decodeFields(skill)},
	}
}
