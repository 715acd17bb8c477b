package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/config"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/biostackhq/biostack/internal/session"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const slugFallback = "profile"

// ProfileService owns profile CRUD: quota-gated creation, slug assignment,
// theme selection, the delete-vs-active conflict and cascade deletion.
type ProfileService struct {
	db            *gorm.DB
	cfg           *config.Config
	subscriptions *SubscriptionService
}

func NewProfileService(db *gorm.DB, cfg *config.Config, subscriptions *SubscriptionService) *ProfileService {
	return &ProfileService{db: db, cfg: cfg, subscriptions: subscriptions}
}

// Create adds a profile for the user, subject to the plan-derived quota.
func (s *ProfileService) Create(userID uuid.UUID, fullName, bio string) (*models.Profile, error) {
	var count int64
	if err := s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}

	limit := s.cfg.ProfileLimit(s.subscriptions.IsPro(userID))
	if count >= int64(limit) {
		return nil, fmt.Errorf("%w: profile limit of %d reached", apperr.ErrQuotaExceeded, limit)
	}

	var profile models.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		assigned, err := s.assignSlug(tx, userID, fullName)
		if err != nil {
			return err
		}
		profile = models.Profile{
			UserID:     userID,
			FullName:   fullName,
			Bio:        bio,
			Slug:       assigned,
			Visibility: models.VisibilityPrivate,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("profile created", "user_id", userID, "profile_id", profile.ID, "slug", profile.Slug)
	return &profile, nil
}

// assignSlug derives a slug from the display name (or a fallback constant) and
// resolves collisions per the configured uniqueness discipline: a counter
// suffix within the user's namespace, or a short random suffix when slugs are
// global.
func (s *ProfileService) assignSlug(tx *gorm.DB, userID uuid.UUID, fullName string) (string, error) {
	base := slug.Make(fullName)
	if base == "" {
		base = slugFallback
	}

	candidate := base
	for attempt := 0; attempt < 100; attempt++ {
		taken, err := s.slugTaken(tx, userID, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if s.cfg.SlugScope == config.SlugScopeGlobal {
			candidate = fmt.Sprintf("%s-%s", base, uuid.New().String()[:4])
		} else {
			candidate = fmt.Sprintf("%s-%d", base, attempt+2)
		}
	}
	return "", fmt.Errorf("%w: could not assign a unique slug for %q", apperr.ErrConflict, base)
}

func (s *ProfileService) slugTaken(tx *gorm.DB, userID uuid.UUID, candidate string) (bool, error) {
	q := tx.Model(&models.Profile{}).Where("slug = ?", candidate)
	if s.cfg.SlugScope != config.SlugScopeGlobal {
		q = q.Where("user_id = ?", userID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByUser returns the user's profiles, newest first.
func (s *ProfileService) ListByUser(userID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

// GetOwned fetches a profile and verifies ownership.
func (s *ProfileService) GetOwned(userID, profileID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: profile", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetActive binds the profile for editing in the caller's session after an
// ownership check.
func (s *ProfileService) SetActive(v session.Values, userID, profileID uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Profile{}).
		Where("id = ? AND user_id = ?", profileID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: profile does not belong to you", apperr.ErrForbidden)
	}
	session.SetActive(v, profileID)
	return nil
}

// GetActive resolves the session-bound profile, re-validated against current
// ownership on every call. (nil, nil) means no profile is bound — callers
// treat that as "go select a profile", never as an error.
func (s *ProfileService) GetActive(v session.Values, userID uuid.UUID) (*models.Profile, error) {
	profileID, ok := session.ActiveID(v)
	if !ok {
		return nil, nil
	}

	var profile models.Profile
	err := s.db.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session.ClearActive(v)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Delete hard-deletes a profile and everything under it. The profile bound as
// active in the session must be switched away from first.
func (s *ProfileService) Delete(v session.Values, userID, profileID uuid.UUID) error {
	if activeID, ok := session.ActiveID(v); ok && activeID == profileID {
		return fmt.Errorf("%w: cannot delete the active profile", apperr.ErrConflict)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("id = ? AND user_id = ?", profileID, userID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: profile", apperr.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("section_id IN (?)",
			tx.Model(&models.ProfileSection{}).Select("id").Where("profile_id = ?", profileID),
		).Delete(&models.LinkClick{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.ProfileView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profileID).Delete(&models.ProfileSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
}

// Update changes the editable profile attributes.
func (s *ProfileService) Update(userID, profileID uuid.UUID, fullName, bio, visibility string) (*models.Profile, error) {
	profile, err := s.GetOwned(userID, profileID)
	if err != nil {
		return nil, err
	}

	if visibility != "" && visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, apperr.NewValidation("visibility", "Visibility must be PUBLIC or PRIVATE")
	}

	updates := map[string]interface{}{
		"full_name": fullName,
		"bio":       bio,
	}
	if visibility != "" {
		updates["visibility"] = visibility
	}
	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateSlug lets a pro user pick a custom slug; the same uniqueness
// discipline as on creation applies.
func (s *ProfileService) UpdateSlug(userID, profileID uuid.UUID, rawSlug string) (*models.Profile, error) {
	if !s.subscriptions.IsPro(userID) {
		return nil, fmt.Errorf("%w: custom slugs require a pro plan", apperr.ErrForbidden)
	}

	profile, err := s.GetOwned(userID, profileID)
	if err != nil {
		return nil, err
	}

	candidate := slug.Make(rawSlug)
	if candidate == "" {
		return nil, apperr.NewValidation("slug", "Slug cannot be empty")
	}
	if candidate != profile.Slug {
		taken, err := s.slugTaken(s.db, userID, candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: slug %q is already taken", apperr.ErrConflict, candidate)
		}
		if err := s.db.Model(profile).Update("slug", candidate).Error; err != nil {
			return nil, err
		}
		profile.Slug = candidate
	}
	return profile, nil
}

// SetTheme assigns a catalog theme to the profile.
func (s *ProfileService) SetTheme(userID, profileID, themeID uuid.UUID) error {
	profile, err := s.GetOwned(userID, profileID)
	if err != nil {
		return err
	}

	var theme models.Theme
	err = s.db.First(&theme, "id = ?", themeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: theme", apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if theme.IsPremium && !s.subscriptions.IsPro(userID) {
		return fmt.Errorf("%w: theme %q requires a pro plan", apperr.ErrForbidden, theme.Name)
	}

	return s.db.Model(profile).Update("theme_id", theme.ID).Error
}

// UpdateImage stores the profile image reference. Used both from the profile
// editor and as the PERSONAL-section side channel: that form's image upload
// lands on the profile, not in the section payload.
func (s *ProfileService) UpdateImage(userID, profileID uuid.UUID, imageURL string) error {
	profile, err := s.GetOwned(userID, profileID)
	if err != nil {
		return err
	}
	return s.db.Model(profile).Update("image_url", imageURL).Error
}

// ListThemes returns the theme catalog.
func (s *ProfileService) ListThemes() ([]models.Theme, error) {
	var themes []models.Theme
	err := s.db.Order("created_at ASC").Find(&themes).Error
	return themes, err
}
