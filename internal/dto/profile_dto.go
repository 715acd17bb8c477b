package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Bio      string `json:"bio" form:"bio"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"full_name" form:"full_name"`
	Bio        string `json:"bio" form:"bio"`
	Visibility string `json:"visibility" form:"visibility"`
}

type UpdateSlugRequest struct {
	Slug string `json:"slug" form:"slug"`
}

type SetThemeRequest struct {
	ThemeID uuid.UUID `json:"theme_id" form:"theme_id"`
}

type ProfileResponse struct {
	ID         uuid.UUID  `json:"id"`
	FullName   string     `json:"full_name"`
	Bio        string     `json:"bio"`
	ImageURL   string     `json:"image_url"`
	Slug       string     `json:"slug"`
	Visibility string     `json:"visibility"`
	ThemeID    *uuid.UUID `json:"theme_id"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	ActiveID *uuid.UUID        `json:"active_id"`
}

type ThemeResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsPremium    bool      `json:"is_premium"`
}
