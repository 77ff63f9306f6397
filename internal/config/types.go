package config

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

type Config struct {
	Logging LoggingConfig `json:"logging"`

	// ProblemsDir is the root of the per-day solution folders.
	ProblemsDir string `json:"problems_dir"`

	Ledger    LedgerConfig     `json:"ledger"`
	IMAP      IMAPConfig       `json:"imap"`
	Poll      PollConfig       `json:"poll"`
	Subscribe *SubscribeConfig `json:"subscribe,omitempty"`
}

type LoggingConfig struct {
	Level   string `json:"level"`
	Console bool   `json:"console"`
	File    struct {
		Enabled bool   `json:"enabled"`
		Path    string `json:"path"`
	} `json:"file"`
}

// LedgerConfig controls where the problem-number ledger lives.
//
// Driver values:
//   - "file": a single JSON document (default)
//   - "sqlite": SQLite database file
type LedgerConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// IMAPConfig describes the mailbox that receives the daily problem emails.
//
// Password may be left empty in the config file; the poller falls back to the
// DCP_IMAP_PASSWORD environment variable (a .env file is honored).
type IMAPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port,omitempty"` // default 993
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Mailbox  string `json:"mailbox,omitempty"` // default "INBOX"

	// From restricts polling to messages whose sender matches.
	From string `json:"from,omitempty"`
}

// PollConfig controls the scheduled inbox poll.
//
// Schedule accepts a cron expression ("0 8 * * *"), an optional "cron:" or
// "interval:" prefix, a Go duration ("30m"), or "HH:MM" (interval of that
// many hours and minutes).
type PollConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule,omitempty"` // default "30m"
}

// SubscribeConfig describes the mailing-list signup form.
type SubscribeConfig struct {
	Endpoint string `json:"endpoint"`
	Email    string `json:"email"`
}

// Validate applies defaults and rejects configs the daemon cannot run with.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if strings.TrimSpace(c.ProblemsDir) == "" {
		c.ProblemsDir = "./problems"
	}

	if c.Ledger.Driver == "" {
		c.Ledger.Driver = "file"
	}
	if strings.TrimSpace(c.Ledger.Path) == "" {
		c.Ledger.Path = "./problem_tracking.json"
	}
	if _, err := ParseDurationField("ledger.busy_timeout", c.Ledger.BusyTimeout); err != nil {
		return err
	}

	if c.Poll.Enabled {
		if strings.TrimSpace(c.IMAP.Host) == "" {
			return errors.New("poll.enabled requires imap.host")
		}
		if strings.TrimSpace(c.IMAP.Username) == "" {
			return errors.New("poll.enabled requires imap.username")
		}
	}
	if c.IMAP.Port == 0 {
		c.IMAP.Port = 993
	}
	if strings.TrimSpace(c.IMAP.Mailbox) == "" {
		c.IMAP.Mailbox = "INBOX"
	}

	if c.Subscribe != nil {
		if strings.TrimSpace(c.Subscribe.Endpoint) == "" {
			return errors.New("subscribe.endpoint is required when subscribe is set")
		}
		if _, err := mail.ParseAddress(c.Subscribe.Email); err != nil {
			return fmt.Errorf("subscribe.email: %w", err)
		}
	}
	return nil
}
