package services

import (
	"encoding/json"
	"time"

	"github.com/biostackhq/biostack/internal/apperr"
	"github.com/biostackhq/biostack/internal/dto"
	"github.com/biostackhq/biostack/internal/models"
	"gorm.io/datatypes"
)

// Fixed titles for the singleton section types.
const (
	titleAbout    = "About Me"
	titlePersonal = "Personal Details"
)

const dateLayout = "2006-01-02"

// EncodeSection maps the flat editor fields onto the variant payload for the
// request's section type. It returns the (possibly overridden) title and the
// payload to store. A *apperr.ValidationError blocks the save; nothing is
// persisted on failure.
func EncodeSection(req *dto.SectionRequest) (string, datatypes.JSON, error) {
	fields := map[string]string{}
	title := req.Title

	var payload interface{}
	switch req.SectionType {
	case models.SectionLinks:
		if req.URL == "" {
			fields["url"] = "URL is required for a links section"
		}
		payload = models.LinkPayload{URL: req.URL, Content: req.Content}

	case models.SectionExperience:
		if req.Position == "" {
			fields["position"] = "Job title is required"
		}
		if req.StartDate == "" {
			fields["start_date"] = "Start date is required"
		} else if !validDate(req.StartDate) {
			fields["start_date"] = "Start date must be YYYY-MM-DD"
		}
		var endDate *string
		if req.IsCurrent {
			endDate = nil
		} else if req.EndDate != "" {
			if !validDate(req.EndDate) {
				fields["end_date"] = "End date must be YYYY-MM-DD"
			} else {
				end := req.EndDate
				endDate = &end
			}
		}
		payload = models.ExperiencePayload{
			Position:  req.Position,
			StartDate: req.StartDate,
			EndDate:   endDate,
			IsCurrent: req.IsCurrent,
			Content:   req.Content,
		}

	case models.SectionSkills:
		if req.SkillName == "" {
			fields["skill_name"] = "Skill name is required"
		}
		level := req.SkillLevel
		if level == "" {
			level = "Beginner"
		} else if !models.ValidSkillLevel(level) {
			fields["skill_level"] = "Level must be one of Beginner, Intermediate, Advanced, Expert"
		}
		// The section's display title is the skill name.
		title = req.SkillName
		payload = models.SkillPayload{Name: req.SkillName, Level: level, Content: req.Content}

	case models.SectionPersonal:
		if req.DOB != "" && !validDate(req.DOB) {
			fields["dob"] = "Date of birth must be YYYY-MM-DD"
		}
		title = titlePersonal
		payload = models.PersonalPayload{
			Phone:         req.Phone,
			Email:         req.Email,
			DOB:           req.DOB,
			Gender:        req.Gender,
			MaritalStatus: req.MaritalStatus,
			Nationality:   req.Nationality,
			Address:       req.Address,
			Location:      req.Location,
			Content:       req.Content,
		}

	case models.SectionAbout:
		if title == "" {
			title = titleAbout
		}
		payload = models.AboutPayload{Content: req.Content}

	default:
		// CUSTOM and anything unrecognized store content only.
		payload = models.CustomPayload{Content: req.Content}
	}

	if len(fields) > 0 {
		return "", nil, &apperr.ValidationError{Fields: fields}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}
	return title, datatypes.JSON(data), nil
}

// DecodeSection pre-fills the flat editor fields from a stored section so the
// edit form opens populated.
func DecodeSection(section *models.ProfileSection) *dto.SectionRequest {
	enabled := section.IsEnabled
	req := &dto.SectionRequest{
		SectionType: section.SectionType,
		Title:       section.Title,
		IsEnabled:   &enabled,
	}

	switch section.SectionType {
	case models.SectionLinks:
		var p models.LinkPayload
		if json.Unmarshal(section.Data, &p) == nil {
			req.URL = p.URL
			req.Content = p.Content
		}
	case models.SectionExperience:
		var p models.ExperiencePayload
		if json.Unmarshal(section.Data, &p) == nil {
			req.Position = p.Position
			req.StartDate = p.StartDate
			if p.EndDate != nil {
				req.EndDate = *p.EndDate
			}
			req.IsCurrent = p.IsCurrent
			req.Content = p.Content
		}
	case models.SectionSkills:
		var p models.SkillPayload
		if json.Unmarshal(section.Data, &p) == nil {
			req.SkillName = p.Name
			req.SkillLevel = p.Level
			req.Content = p.Content
		}
	case models.SectionPersonal:
		var p models.PersonalPayload
		if json.Unmarshal(section.Data, &p) == nil {
			req.Phone = p.Phone
			req.Email = p.Email
			req.DOB = p.DOB
			req.Gender = p.Gender
			req.MaritalStatus = p.MaritalStatus
			req.Nationality = p.Nationality
			req.Address = p.Address
			req.Location = p.Location
			req.Content = p.Content
		}
	default:
		var p models.CustomPayload
		if json.Unmarshal(section.Data, &p) == nil {
			req.Content = p.Content
		}
	}

	return req
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
