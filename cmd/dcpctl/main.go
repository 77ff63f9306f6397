package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dcptrack/internal/config"
	"dcptrack/internal/ledger"
	logx "dcptrack/pkg/logx"
)

var (
	problemsDir  string
	ledgerDriver string
	ledgerPath   string
)

var rootCmd = &cobra.Command{
	Use:           "dcpctl",
	Short:         "manage the daily coding problem workspace",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&problemsDir, "problems-dir", "./problems",
		"root directory holding the per-day problem folders")
	rootCmd.PersistentFlags().StringVar(&ledgerDriver, "ledger-driver", "file",
		"ledger driver (file or sqlite)")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "./problem_tracking.json",
		"path to the tracking ledger")

	rootCmd.AddCommand(addCmd, listCmd, trackCmd, untrackedCmd, initCmd, subscribeCmd, pollCmd)
}

func openLedger() (ledger.Store, error) {
	return ledger.Open(ledger.Config{
		Driver: ledgerDriver,
		Path:   ledgerPath,
	}, logx.NewConsole("warn"))
}

func ledgerFromConfig(cfg *config.Config) (ledger.Store, error) {
	busy, err := config.ParseDurationField("ledger.busy_timeout", cfg.Ledger.BusyTimeout)
	if err != nil {
		return nil, err
	}
	return ledger.Open(ledger.Config{
		Driver:      cfg.Ledger.Driver,
		Path:        cfg.Ledger.Path,
		BusyTimeout: busy,
	}, logx.NewConsole("warn"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
