package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SectionService owns CRUD over a profile's sections: ordering, the
// singleton-per-type upsert rule, bulk reorder and deletion.
type SectionService struct {
	db *gorm.DB
}

func NewSectionService(db *gorm.DB) *SectionService {
	return &SectionService{db: db}
}

// List returns the profile's sections ordered by (order, created_at). The
// owner's editing view includes disabled sections; the public view does not.
func (s *SectionService) List(profileID uuid.UUID, includeDisabled bool) ([]models.ProfileSection, error) {
	var sections []models.ProfileSection
	q := s.db.Where("profile_id = ?", profileID)
	if !includeDisabled {
		q = q.Where("is_enabled = ?", true)
	}
	err := q.Order("sort_order ASC, created_at ASC").Find(&sections).Error
	return sections, err
}

// Upsert creates or updates a section from the flat editor fields. For the
// singleton types (ABOUT, PERSONAL) an existing section of that type is
// updated in place, keeping its identity, order and creation time; every other
// type appends a new section at the end of the order sequence. The upsert key
// is strictly (profile, section_type) — never title or content.
func (s *SectionService) Upsert(profileID uuid.UUID, req *dto.SectionRequest) (*models.ProfileSection, error) {
	if !models.KnownSectionType(req.SectionType) {
		return nil, apperr.NewValidation("section_type", "Unknown section type")
	}

	title, data, err := EncodeSection(req)
	if err != nil {
		return nil, err
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	var section models.ProfileSection
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if models.SingletonSection(req.SectionType) {
			var existing models.ProfileSection
			err := tx.Where("profile_id = ? AND section_type = ?", profileID, req.SectionType).
				First(&existing).Error
			if err == nil {
				updates := map[string]interface{}{
					"title":      title,
					"data":       data,
					"is_enabled": enabled,
				}
				if err := tx.Model(&existing).Updates(updates).Error; err != nil {
					return err
				}
				section = existing
				section.Title = title
				section.Data = data
				section.IsEnabled = enabled
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		order, err := nextOrder(tx, profileID)
		if err != nil {
			return err
		}
		section = models.ProfileSection{
			ProfileID:   profileID,
			SectionType: req.SectionType,
			Title:       title,
			Data:        data,
			IsEnabled:   enabled,
			Order:       order,
		}
		return tx.Create(&section).Error
	})
	if err != nil {
		return nil, err
	}

	slog.Info("section saved", "profile_id", profileID, "section_type", req.SectionType, "section_id", section.ID)
	return &section, nil
}

// Reorder assigns order = index for each listed section id that belongs to
// the profile, in one all-or-nothing transaction. Ids that are unknown or
// belong to another profile are silently ignored; sections missing from the
// list keep their current order.
func (s *SectionService) Reorder(profileID uuid.UUID, sectionIDs []uuid.UUID) error {
	if len(sectionIDs) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var owned []models.ProfileSection
		if err := tx.Select("id").
			Where("profile_id = ? AND id IN ?", profileID, sectionIDs).
			Find(&owned).Error; err != nil {
			return err
		}

		ownedSet := make(map[uuid.UUID]bool, len(owned))
		for _, sec := range owned {
			ownedSet[sec.ID] = true
		}

		for index, id := range sectionIDs {
			if !ownedSet[id] {
				continue
			}
			if err := tx.Model(&models.ProfileSection{}).
				Where("id = ?", id).
				Update("sort_order", index).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Get fetches a single section after an ownership check.
func (s *SectionService) Get(profileID, sectionID uuid.UUID) (*models.ProfileSection, error) {
	var section models.ProfileSection
	err := s.db.Where("id = ? AND profile_id = ?", sectionID, profileID).First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: section", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// Delete hard-deletes a section after an ownership check, cascading its link
// clicks.
func (s *SectionService) Delete(profileID, sectionID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var section models.ProfileSection
		err := tx.Where("id = ? AND profile_id = ?", sectionID, profileID).First(&section).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: section", apperr.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if err := tx.Where("section_id = ?", sectionID).Delete(&models.LinkClick{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
}

// PrefillPersonal builds a blank PERSONAL form seeded from the owner's
// account-wide detail record. This is a convenience default for the editor
// only; nothing is written.
func (s *SectionService) PrefillPersonal(userID uuid.UUID) (*dto.SectionRequest, error) {
	req := &dto.SectionRequest{SectionType: models.SectionPersonal, Title: titlePersonal}

	var detail models.UserDetail
	err := s.db.Where("user_id = ?", userID).First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return req, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err == nil {
		req.Email = user.Email
	}

	req.Phone = detail.Phone
	req.DOB = detail.DOB
	req.Gender = detail.Gender
	req.MaritalStatus = detail.MaritalStatus
	req.Nationality = detail.Nationality
	req.Address = detail.Address
	req.Location = detail.Location
	return req, nil
}

// nextOrder appends after the current maximum order for the profile.
func nextOrder(tx *gorm.DB, profileID uuid.UUID) (int, error) {
	var max *int
	err := tx.Model(&models.ProfileSection{}).
		Where("profile_id = ?", profileID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
