// Package inbox polls an IMAP mailbox for new problem emails and turns each
// one into a templated solution folder plus a ledger placeholder.
package inbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/joho/godotenv"

	"dcptrack/internal/ledger"
	"dcptrack/internal/parser"
	"dcptrack/internal/workspace"
	logx "dcptrack/pkg/logx"
)

// PasswordEnv is consulted when the config leaves the IMAP password empty,
// so credentials can stay out of the config file. A .env file is honored.
const PasswordEnv = "DCP_IMAP_PASSWORD"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Mailbox  string // default INBOX
	From     string // optional sender filter
}

type Poller struct {
	cfg   Config
	gen   *workspace.Generator
	store ledger.Store
	log   logx.Logger
}

func New(cfg Config, gen *workspace.Generator, store ledger.Store, log logx.Logger) *Poller {
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	if strings.TrimSpace(cfg.Mailbox) == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Poller{cfg: cfg, gen: gen, store: store, log: log}
}

// resolvePassword falls back to the environment (and a .env file) when the
// config does not carry the password.
func resolvePassword(cfg Config) (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}
	_ = godotenv.Load()
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}
	return "", fmt.Errorf("no IMAP password: set imap.password or %s", PasswordEnv)
}

// RunOnce performs a single poll cycle: fetch unseen problem emails, generate
// a folder for each, seed the ledger, and mark the messages seen. Returns the
// number of new problem folders created. A folder that already exists for a
// message's date is logged and skipped, not fatal.
func (p *Poller) RunOnce(ctx context.Context) (int, error) {
	password, err := resolvePassword(p.cfg)
	if err != nil {
		return 0, err
	}

	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Login(p.cfg.Username, password).Wait(); err != nil {
		return 0, fmt.Errorf("login as %s: %w", p.cfg.Username, err)
	}

	mbox, err := client.Select(p.cfg.Mailbox, nil).Wait()
	if err != nil {
		return 0, fmt.Errorf("select %s: %w", p.cfg.Mailbox, err)
	}
	if mbox.NumMessages == 0 {
		p.log.Debug("mailbox empty", logx.String("mailbox", p.cfg.Mailbox))
		return 0, nil
	}

	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	if p.cfg.From != "" {
		criteria.Header = []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: p.cfg.From},
		}
	}
	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return 0, fmt.Errorf("search: %w", err)
	}
	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		p.log.Debug("no unseen problem emails")
		return 0, nil
	}
	p.log.Info("unseen problem emails found", logx.Int("count", len(uids)))

	created := 0
	var processed []imap.UID
	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		msgDate, raw, err := p.fetchMessage(client, uid)
		if err != nil {
			p.log.Warn("fetch failed", logx.Any("uid", uid), logx.Err(err))
			continue
		}

		ok, err := p.ingest(ctx, msgDate, raw)
		if err != nil {
			p.log.Warn("ingest failed", logx.Any("uid", uid), logx.Err(err))
			continue
		}
		if ok {
			created++
		}
		processed = append(processed, uid)
	}

	if len(processed) > 0 {
		store := &imap.StoreFlags{
			Op:     imap.StoreFlagsAdd,
			Silent: true,
			Flags:  []imap.Flag{imap.FlagSeen},
		}
		if err := client.Store(imap.UIDSetNum(processed...), store, nil).Close(); err != nil {
			p.log.Warn("marking messages seen failed", logx.Err(err))
		}
	}

	if err := client.Logout().Wait(); err != nil {
		p.log.Debug("logout failed", logx.Err(err))
	}
	return created, nil
}

func (p *Poller) fetchMessage(client *imapclient.Client, uid imap.UID) (time.Time, []byte, error) {
	bodySection := &imap.FetchItemBodySection{}
	opts := &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	cmd := client.Fetch(imap.UIDSetNum(uid), opts)
	defer cmd.Close()

	var (
		date time.Time
		raw  []byte
	)
	for {
		msg := cmd.Next()
		if msg == nil {
			break
		}
		for {
			item := msg.Next()
			if item == nil {
				break
			}
			switch it := item.(type) {
			case imapclient.FetchItemDataEnvelope:
				if it.Envelope != nil {
					date = it.Envelope.Date
				}
			case imapclient.FetchItemDataBodySection:
				var buf bytes.Buffer
				if _, err := io.Copy(&buf, it.Literal); err != nil {
					return time.Time{}, nil, err
				}
				raw = buf.Bytes()
			}
		}
	}
	if raw == nil {
		return time.Time{}, nil, errors.New("message has no body section")
	}
	return date, raw, nil
}

// ingest parses one raw message and materializes it. Returns false when the
// folder already existed.
func (p *Poller) ingest(ctx context.Context, msgDate time.Time, raw []byte) (bool, error) {
	prob, err := parser.ParseEML(bytes.NewReader(raw))
	if err != nil {
		return false, fmt.Errorf("parse: %w", err)
	}

	if msgDate.IsZero() {
		msgDate = time.Now()
	}
	dir, err := p.gen.Generate(prob, msgDate)
	if errors.Is(err, workspace.ErrExists) {
		p.log.Warn("folder already exists; skipping",
			logx.String("dir", workspace.DirName(msgDate)))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	name := workspace.DirName(msgDate)
	if p.store != nil {
		if _, err := p.store.Seed(ctx, []string{name}); err != nil {
			p.log.Warn("ledger seed failed", logx.String("dir", name), logx.Err(err))
		}
	}
	p.log.Info("problem folder created",
		logx.String("dir", dir),
		logx.String("company", prob.Company),
		logx.String("difficulty", prob.Difficulty))
	return true, nil
}
