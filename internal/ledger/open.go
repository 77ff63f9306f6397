package ledger

import (
	"context"
	"errors"
	"strings"

	logx "dcptrack/pkg/logx"
)

// Store is the persistence API for the folder -> problem-number mapping.
type Store interface {
	// Assign records the external problem number for a folder.
	Assign(ctx context.Context, dir string, number int) error
	// Get returns the record for a folder, if tracked.
	Get(ctx context.Context, dir string) (Record, bool, error)
	// All returns every tracked folder.
	All(ctx context.Context) (map[string]Record, error)
	// Seed adds untracked placeholder entries for the given folders.
	// Existing entries are left alone. Returns the number added.
	Seed(ctx context.Context, dirs []string) (int, error)
	Close() error
}

// Open initializes the configured store.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown ledger driver: " + driver)
	}
}
