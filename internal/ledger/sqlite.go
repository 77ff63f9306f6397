//go:build sqlite
// +build sqlite

package ledger

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	logx "dcptrack/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Assign(ctx context.Context, dir string, number int) error {
	if s == nil || s.db == nil {
		return ErrDisabled
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("empty directory name")
	}
	notes := fmt.Sprintf("DCP #%d identified", number)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO problems(dir, number, notes) VALUES(?,?,?)
		 ON CONFLICT(dir) DO UPDATE SET number=excluded.number, notes=excluded.notes`,
		dir, number, notes,
	)
	return err
}

func (s *sqliteStore) Get(ctx context.Context, dir string) (Record, bool, error) {
	if s == nil || s.db == nil {
		return Record{}, false, ErrDisabled
	}
	var rec Record
	err := s.db.QueryRowContext(ctx,
		`SELECT number, notes FROM problems WHERE dir = ?`, dir,
	).Scan(&rec.Number, &rec.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *sqliteStore) All(ctx context.Context) (map[string]Record, error) {
	if s == nil || s.db == nil {
		return nil, ErrDisabled
	}
	rows, err := s.db.QueryContext(ctx, `SELECT dir, number, notes FROM problems`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]Record{}
	for rows.Next() {
		var dir string
		var rec Record
		if err := rows.Scan(&dir, &rec.Number, &rec.Notes); err != nil {
			return nil, err
		}
		out[dir] = rec
	}
	return out, rows.Err()
}

func (s *sqliteStore) Seed(ctx context.Context, dirs []string) (int, error) {
	if s == nil || s.db == nil {
		return 0, ErrDisabled
	}
	added := 0
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO problems(dir, number, notes) VALUES(?, 0, 'DCP number not yet identified')
			 ON CONFLICT(dir) DO NOTHING`, d)
		if err != nil {
			return added, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	return added, nil
}
