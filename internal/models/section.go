package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section types. ABOUT and PERSONAL are singletons per profile; the rest are
// repeatable without limit.
const (
	SectionAbout      = "ABOUT"
	SectionSkills     = "SKILLS"
	SectionLinks      = "LINKS"
	SectionProjects   = "PROJECTS"
	SectionExperience = "EXPERIENCE"
	SectionPersonal   = "PERSONAL"
	SectionCustom     = "CUSTOM"
)

// SingletonSection reports whether at most one section of this type may exist
// per profile.
func SingletonSection(sectionType string) bool {
	return sectionType == SectionAbout || sectionType == SectionPersonal
}

// KnownSectionType reports whether the type is part of the fixed enumeration.
func KnownSectionType(sectionType string) bool {
	switch sectionType {
	case SectionAbout, SectionSkills, SectionLinks, SectionProjects,
		SectionExperience, SectionPersonal, SectionCustom:
		return true
	}
	return false
}

// ProfileSection is a typed, orderable content block. Data holds the
// variant payload keyed by SectionType; list order is (Order, CreatedAt).
type ProfileSection struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"profile_id"`
	SectionType string         `gorm:"size:20;not null;index" json:"section_type"`
	Title       string         `gorm:"size:255" json:"title"`
	Data        datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"data"`
	IsEnabled   bool           `gorm:"default:true" json:"is_enabled"`
	Order       int            `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Profile     Profile        `gorm:"foreignKey:ProfileID" json:"-"`
}

func (s *ProfileSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Variant payloads stored in ProfileSection.Data. One struct per section
// type; unrecognized types fall back to CustomPayload.

type AboutPayload struct {
	Content string `json:"content"`
}

type LinkPayload struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type SkillPayload struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Content string `json:"content"`
}

type ExperiencePayload struct {
	Position  string  `json:"position"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsCurrent bool    `json:"is_current"`
	Content   string  `json:"content"`
}

type PersonalPayload struct {
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	Nationality   string `json:"nationality"`
	Address       string `json:"address"`
	Location      string `json:"location"`
	Content       string `json:"content"`
}

type CustomPayload struct {
	Content string `json:"content"`
}

// SkillLevels is the closed set accepted for SkillPayload.Level.
var SkillLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

func ValidSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}

// LinkURL extracts data.url from a LINKS section payload. Empty when the
// payload has no usable URL.
func (s *ProfileSection) LinkURL() string {
	var p LinkPayload
	if err := json.Unmarshal(s.Data, &p); err != nil {
		return ""
	}
	return p.URL
}
