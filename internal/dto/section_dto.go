package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SectionRequest is the flat form the editor submits: one field per possible
// attribute across all section types. The codec picks the fields relevant to
// SectionType and packs them into the stored payload.
type SectionRequest struct {
	SectionType string `json:"section_type" form:"section_type"`
	Title       string `json:"title" form:"title"`
	Content     string `json:"content" form:"content"`
	IsEnabled   *bool  `json:"is_enabled" form:"is_enabled"`

	// LINKS
	URL string `json:"url" form:"url"`

	// EXPERIENCE
	Position  string `json:"position" form:"position"`
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
	IsCurrent bool   `json:"is_current" form:"is_current"`

	// SKILLS
	SkillName  string `json:"skill_name" form:"skill_name"`
	SkillLevel string `json:"skill_level" form:"skill_level"`

	// PERSONAL
	Phone         string `json:"phone" form:"phone"`
	Email         string `json:"email" form:"email"`
	DOB           string `json:"dob" form:"dob"`
	Gender        string `json:"gender" form:"gender"`
	MaritalStatus string `json:"marital_status" form:"marital_status"`
	Nationality   string `json:"nationality" form:"nationality"`
	Address       string `json:"address" form:"address"`
	Location      string `json:"location" form:"location"`
}

type ReorderRequest struct {
	SectionIDs []uuid.UUID `json:"section_ids"`
}

type SectionResponse struct {
	ID          uuid.UUID       `json:"id"`
	SectionType string          `json:"section_type"`
	Title       string          `json:"title"`
	Data        json.RawMessage `json:"data"`
	IsEnabled   bool            `json:"is_enabled"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"created_at"`
}
