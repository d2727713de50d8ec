package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day. It is always held at UTC midnight.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustParseDate is ParseDate for constants; it panics on malformed input
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the date n days later
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("failed to unmarshal date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Week is one contiguous seven day span of a season
type Week struct {
	WeekNumber int  `json:"week_number"`
	StartDate  Date `json:"start_date"`
	EndDate    Date `json:"end_date"`
}

// Season represents an NFL season as stored by the backend
type Season struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	StartDate   Date      `json:"start_date"`
	EndDate     Date      `json:"end_date"`
	Description *string   `json:"description,omitempty"`
	IsCurrent   bool      `json:"is_current"`
	Weeks       []Week    `json:"weeks"`
	CreatedAt   time.Time `json:"created_at"`
}

// SeasonCreateRequest is the body of POST /seasons/
type SeasonCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Year        int     `json:"year" validate:"required,min=1920,max=2100"`
	StartDate   Date    `json:"start_date"`
	EndDate     Date    `json:"end_date"`
	Description *string `json:"description,omitempty"`
	NumWeeks    int     `json:"num_weeks" validate:"min=1,max=52"`
	WeekCount   int     `json:"week_count"`
	IsCurrent   bool    `json:"is_current"`
	Weeks       []Week  `json:"weeks" validate:"required,min=1"`
}
