package ledger

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrDisabled = errors.New("ledger disabled")

	// ErrUnknownDir reports an Assign against a folder that does not exist
	// in the problems directory.
	ErrUnknownDir = errors.New("unknown problem directory")
)

// Config configures the ledger backend.
//
// Driver values:
//   - "file": single JSON document (default, matches problem_tracking.json)
//   - "sqlite": SQLite database file (optional build tag)
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Record is one tracked problem folder.
// Number 0 means the external problem number is not yet identified.
type Record struct {
	Number int    `json:"dcp_number"`
	Notes  string `json:"notes,omitempty"`
}

// Untracked returns the folders among dirs that have no assigned number,
// sorted by name.
func Untracked(all map[string]Record, dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if rec, ok := all[d]; !ok || rec.Number == 0 {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}
