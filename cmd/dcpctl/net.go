package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dcptrack/internal/config"
	"dcptrack/internal/inbox"
	"dcptrack/internal/subscribe"
	"dcptrack/internal/workspace"
	logx "dcptrack/pkg/logx"
)

var (
	subEndpoint string
	subEmail    string
	pollConfig  string
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "sign an address up for the daily mailing list",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := subEmail
		if email == "" {
			_ = godotenv.Load()
			email = os.Getenv("DCP_EMAIL")
		}
		if email == "" {
			return errors.New("no address: pass --email or set DCP_EMAIL")
		}

		sub := subscribe.New(subEndpoint, logx.NewConsole("info"))
		if err := sub.Subscribe(cmd.Context(), email); err != nil {
			return err
		}
		fmt.Println("subscribed", email)
		return nil
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "run one inbox poll cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewManager(pollConfig).Load()
		if err != nil {
			return err
		}

		store, err := ledgerFromConfig(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		log := logx.NewConsole(cfg.Logging.Level)
		p := inbox.New(inbox.Config{
			Host:     cfg.IMAP.Host,
			Port:     cfg.IMAP.Port,
			Username: cfg.IMAP.Username,
			Password: cfg.IMAP.Password,
			Mailbox:  cfg.IMAP.Mailbox,
			From:     cfg.IMAP.From,
		}, workspace.NewGenerator(cfg.ProblemsDir), store, log)

		created, err := p.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("poll done: %d folder(s) created\n", created)
		return nil
	},
}

func init() {
	subscribeCmd.Flags().StringVar(&subEndpoint, "endpoint",
		"https://www.dailycodingproblem.com/", "signup form endpoint")
	subscribeCmd.Flags().StringVar(&subEmail, "email", "",
		"address to subscribe (default $DCP_EMAIL)")
	pollCmd.Flags().StringVar(&pollConfig, "config", "./config.yaml",
		"path to config file (yaml or json)")
}
