package history

import "time"

// Move is one recorded relocation, kept as absolute paths so undo does not
// depend on configuration at restore time.
type Move struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Manifest is the persisted record of one organize operation. After creation
// only the undo fields change: Undone, UndoTimestamp, and RestoredFiles are
// stamped by the first undo attempt.
type Manifest struct {
	RunID         string            `json:"run_id"`
	Timestamp     time.Time         `json:"timestamp"`
	Moves         map[string][]Move `json:"moves"`
	Errors        []string          `json:"errors"`
	TotalFiles    int               `json:"total_files"`
	Undone        bool              `json:"undone"`
	UndoTimestamp *time.Time        `json:"undo_timestamp,omitempty"`
	RestoredFiles int               `json:"restored_files,omitempty"`
}

// Summary is the slice of manifest data shown in history listings.
type Summary struct {
	Name          string
	Timestamp     time.Time
	TotalFiles    int
	Undone        bool
	RestoredFiles int
}
