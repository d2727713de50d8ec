package seasons

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcdev12/gridiron/go/internal/models"
)

// Week count limits of a season
const (
	MinWeeks = 1
	MaxWeeks = 52
	// DefaultWeeks is an NFL regular season
	DefaultWeeks = 18
)

const daysPerWeek = 7

var (
	ErrWeekCount         = fmt.Errorf("week count must be between %d and %d", MinWeeks, MaxWeeks)
	ErrMissingStart      = errors.New("start date is required")
	ErrEndBeforeStart    = errors.New("end date must be after the start date")
	ErrEndInPast         = errors.New("end date cannot be in the past")
	ErrEndBeforeLastWeek = errors.New("end date must be on or after the end of the last generated week")
)

// GenerateWeeks lays out count consecutive seven day weeks starting on start.
// Week i spans start+7(i-1) through start+7(i-1)+6.
func GenerateWeeks(start models.Date, count int) ([]models.Week, error) {
	if start.IsZero() {
		return nil, ErrMissingStart
	}
	if count < MinWeeks || count > MaxWeeks {
		return nil, ErrWeekCount
	}

	weeks := make([]models.Week, count)
	for i := range weeks {
		weekStart := start.AddDays(i * daysPerWeek)
		weeks[i] = models.Week{
			WeekNumber: i + 1,
			StartDate:  weekStart,
			EndDate:    weekStart.AddDays(daysPerWeek - 1),
		}
	}
	return weeks, nil
}

// ValidateDates checks a season's date range against its weeks and today's date
func ValidateDates(start, end models.Date, weeks []models.Week, now time.Time) error {
	if start.IsZero() {
		return ErrMissingStart
	}
	if !end.After(start.Time) {
		return ErrEndBeforeStart
	}
	if end.Before(models.NewDate(now).Time) {
		return ErrEndInPast
	}
	if len(weeks) > 0 && end.Before(weeks[len(weeks)-1].EndDate.Time) {
		return ErrEndBeforeLastWeek
	}
	return nil
}
