package models

import (
	"time"
)

// Position is a player's roster position
type Position string

const (
	PositionQB   Position = "QB"
	PositionRB   Position = "RB"
	PositionWR   Position = "WR"
	PositionTE   Position = "TE"
	PositionK    Position = "K"
	PositionDST  Position = "DST"
	PositionFLEX Position = "FLEX"
)

// Positions lists every accepted position in display order
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST, PositionFLEX}

// Valid reports whether p is an accepted position
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// Player represents an NFL player as stored by the backend
type Player struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Position     Position  `json:"position"`
	TeamID       int64     `json:"team_id"`
	ImageURL     *string   `json:"image_url,omitempty"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    int64     `json:"created_by"`
}

// PlayerCreateRequest is the JSON body of POST /players
type PlayerCreateRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=128"`
	Position Position `json:"position" validate:"oneof=QB RB WR TE K DST FLEX"`
	TeamID   int64    `json:"team_id" validate:"gt=0"`
	ImageURL string   `json:"image_url" validate:"required,url"`
}

// BatchUploadResult is returned by POST /players/batch-upload
type BatchUploadResult struct {
	Message string `json:"message"`
	Created int    `json:"created,omitempty"`
}
