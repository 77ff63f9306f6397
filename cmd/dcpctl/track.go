package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"dcptrack/internal/ledger"
	"dcptrack/internal/workspace"
)

var trackCmd = &cobra.Command{
	Use:   "track <folder> <number>",
	Short: "record the problem number for a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := filepath.Base(args[0])
		number, err := strconv.Atoi(args[1])
		if err != nil || number <= 0 {
			return fmt.Errorf("problem number must be a positive integer, got %q", args[1])
		}
		if _, err := os.Stat(filepath.Join(problemsDir, dir)); err != nil {
			return fmt.Errorf("%w: %s", ledger.ErrUnknownDir, dir)
		}

		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Assign(cmd.Context(), dir, number); err != nil {
			return err
		}
		fmt.Printf("%s -> DCP #%d\n", dir, number)
		return nil
	},
}

var untrackedCmd = &cobra.Command{
	Use:   "untracked",
	Short: "list folders whose problem number is still unknown",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()
		all, err := store.All(cmd.Context())
		if err != nil {
			return err
		}

		entries, err := workspace.NewGenerator(problemsDir).List()
		if err != nil {
			return err
		}
		dirs := make([]string, 0, len(entries))
		for _, e := range entries {
			dirs = append(dirs, e.Dir)
		}

		missing := ledger.Untracked(all, dirs)
		if len(missing) == 0 {
			fmt.Println("all folders tracked")
			return nil
		}
		for _, dir := range missing {
			fmt.Println(dir)
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "seed the ledger with every existing problem folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := workspace.NewGenerator(problemsDir).List()
		if err != nil {
			return err
		}
		dirs := make([]string, 0, len(entries))
		for _, e := range entries {
			dirs = append(dirs, e.Dir)
		}

		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()
		added, err := store.Seed(cmd.Context(), dirs)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d of %d folders\n", added, len(dirs))
		return nil
	},
}
