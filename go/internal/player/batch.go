package player

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Preview is one entry of a batch file as shown before uploading it
type Preview struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Image    string `json:"image"`
}

// ReadBatch parses the batch file at path for previewing
func ReadBatch(path string) ([]Preview, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("failed to parse batch file: invalid JSON")
		}
		return nil, ErrNotArray
	}

	var players []Preview
	if err := json.Unmarshal(trimmed, &players); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(players) == 0 {
		return nil, ErrEmptyBatch
	}
	return players, nil
}
