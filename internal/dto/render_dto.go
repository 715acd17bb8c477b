package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// RenderModel is the data contract a theme template receives. Template
// rendering itself happens in the theme layer; this service only assembles
// the model.
type RenderModel struct {
	Profile  RenderProfile   `json:"profile"`
	Template string          `json:"template"`
	Sections []RenderSection `json:"sections"`

	// ProfileID is for internal consumers (the view recorder); it is not part
	// of the template contract.
	ProfileID uuid.UUID `json:"-"`
}

type RenderProfile struct {
	DisplayName   string `json:"display_name"`
	Bio           string `json:"bio"`
	ImageURL      string `json:"image_url"`
	OwnerUsername string `json:"owner_username"`
}

type RenderSection struct {
	ID    uuid.UUID       `json:"id"`
	Type  string          `json:"type"`
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`

	// Fields is Data decoded for template access ({{.Fields.url}}).
	Fields map[string]any `json:"-"`
}
