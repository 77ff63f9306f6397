package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	logx "dcptrack/pkg/logx"
)

// fileStore keeps the whole ledger in one JSON document, the shape the
// original tracking file used:
//
//	{"problems": {"2023_1204": {"dcp_number": 387, "notes": "..."}}}
//
// Writes go through a temp file + rename so a crash never leaves a
// half-written ledger behind.
type fileStore struct {
	log  logx.Logger
	path string

	mu       sync.Mutex
	problems map[string]Record
}

type fileDoc struct {
	Problems map[string]Record `json:"problems"`
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("ledger.path is required for file driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	s := &fileStore{log: log, path: path, problems: map[string]Record{}}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fresh ledger
	case err != nil:
		return nil, err
	default:
		var doc fileDoc
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("corrupted ledger file %s: %w", path, err)
		}
		if doc.Problems != nil {
			s.problems = doc.Problems
		}
	}
	return s, nil
}

func (s *fileStore) Close() error { return nil }

func (s *fileStore) Assign(ctx context.Context, dir string, number int) error {
	_ = ctx
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("empty directory name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.problems[dir] = Record{
		Number: number,
		Notes:  fmt.Sprintf("DCP #%d identified", number),
	}
	return s.saveLocked()
}

func (s *fileStore) Get(ctx context.Context, dir string) (Record, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.problems[dir]
	return rec, ok, nil
}

func (s *fileStore) All(ctx context.Context) (map[string]Record, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Record, len(s.problems))
	for k, v := range s.problems {
		out[k] = v
	}
	return out, nil
}

func (s *fileStore) Seed(ctx context.Context, dirs []string) (int, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, ok := s.problems[d]; ok {
			continue
		}
		s.problems[d] = Record{Notes: "DCP number not yet identified"}
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.saveLocked()
}

func (s *fileStore) saveLocked() error {
	b, err := json.MarshalIndent(fileDoc{Problems: s.problems}, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.log.Debug("ledger saved", logx.String("path", s.path), logx.Int("entries", len(s.problems)))
	return nil
}
