package models

import (
	"time"
)

// Team represents a team as stored by the backend
type Team struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	City         *string   `json:"city,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    int64     `json:"created_by"`
}

// TeamCreateRequest is the JSON body of POST /teams
type TeamCreateRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	City     string  `json:"city" validate:"required,min=2"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// TeamListParams are the query parameters of GET /teams
type TeamListParams struct {
	Query  string
	Active *bool
	UserID int64
}
