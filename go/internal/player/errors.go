package player

import "errors"

var (
	// ErrNotArray is returned when a batch file does not hold a JSON array
	ErrNotArray = errors.New("the JSON must contain an array of players")
	// ErrEmptyBatch is returned for a batch file without players
	ErrEmptyBatch = errors.New("the batch file contains no players")
)
