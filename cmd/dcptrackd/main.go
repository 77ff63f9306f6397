package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sysd "github.com/coreos/go-systemd/v22/daemon"

	"dcptrack/internal/config"
	"dcptrack/internal/inbox"
	"dcptrack/internal/ledger"
	"dcptrack/internal/scheduler"
	"dcptrack/internal/workspace"
	logx "dcptrack/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file (yaml or json)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	logSvc, log := logx.New(loggingConfig(cfg))
	defer logSvc.Close()
	mgr.SetLogger(log)

	store, err := ledger.Open(ledgerConfig(cfg), log)
	if err != nil {
		log.Error("opening ledger failed", logx.Err(err))
		os.Exit(1)
	}
	defer store.Close()

	sched := scheduler.New(scheduler.Config{}, log)
	if cfg.Poll.Enabled {
		spec := cfg.Poll.Schedule
		if spec == "" {
			spec = "30m"
		}
		// The poller is rebuilt per run so a config reload picks up new
		// IMAP settings without a restart.
		err := sched.Add("inbox-poll", spec, func(ctx context.Context) error {
			cur := mgr.Get()
			p := inbox.New(inboxConfig(cur),
				workspace.NewGenerator(cur.ProblemsDir), store, log)
			created, err := p.RunOnce(ctx)
			if err != nil {
				return err
			}
			if created > 0 {
				log.Info("poll cycle done", logx.Int("created", created))
			}
			return nil
		})
		if err != nil {
			log.Error("registering poll job failed", logx.Err(err))
			os.Exit(1)
		}
	}
	if err := sched.Start(ctx); err != nil {
		log.Error("starting scheduler failed", logx.Err(err))
		os.Exit(1)
	}

	// Live config: watch the file and reapply the logging section.
	go func() { _ = mgr.Watch(ctx) }()
	updates := mgr.Subscribe(4)
	go func() {
		for cur := range updates {
			logSvc.Apply(loggingConfig(cur))
			log.Info("config reloaded", logx.String("path", cfgPath))
		}
	}()

	_, _ = sysd.SdNotify(false, sysd.SdNotifyReady)
	log.Info("dcptrackd started",
		logx.String("problems_dir", cfg.ProblemsDir),
		logx.Bool("poll", cfg.Poll.Enabled))

	<-ctx.Done()
	_, _ = sysd.SdNotify(false, sysd.SdNotifyStopping)
	sched.Stop(context.Background())
	mgr.Unsubscribe(updates)
	log.Info("dcptrackd stopped")
}

func loggingConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}

func ledgerConfig(cfg *config.Config) ledger.Config {
	busy, _ := config.ParseDurationField("ledger.busy_timeout", cfg.Ledger.BusyTimeout)
	return ledger.Config{
		Driver:      cfg.Ledger.Driver,
		Path:        cfg.Ledger.Path,
		BusyTimeout: busy,
	}
}

func inboxConfig(cfg *config.Config) inbox.Config {
	return inbox.Config{
		Host:     cfg.IMAP.Host,
		Port:     cfg.IMAP.Port,
		Username: cfg.IMAP.Username,
		Password: cfg.IMAP.Password,
		Mailbox:  cfg.IMAP.Mailbox,
		From:     cfg.IMAP.From,
	}
}
