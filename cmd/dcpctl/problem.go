package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dcptrack/internal/parser"
	"dcptrack/internal/workspace"
)

var (
	addEML  string
	addText string
	addDate string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "create a problem folder from an email or raw text",
	Long: `Parses a problem out of a raw .eml file, a text flag, or stdin,
then scaffolds a dated folder with a readme and solution skeleton.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prob, err := readProblem()
		if err != nil {
			return err
		}

		date := time.Now()
		if addDate != "" {
			if date, err = workspace.ParseDate(addDate); err != nil {
				return err
			}
		}

		gen := workspace.NewGenerator(problemsDir)
		dir, err := gen.Generate(prob, date)
		if err != nil {
			if errors.Is(err, workspace.ErrExists) {
				return fmt.Errorf("folder for %s already exists", workspace.DirName(date))
			}
			return err
		}

		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.Seed(cmd.Context(), []string{filepath.Base(dir)}); err != nil {
			return err
		}

		fmt.Println("created", dir)
		if prob.Company != "" {
			fmt.Println("  asked by:", prob.Company)
		}
		if prob.Difficulty != "" {
			fmt.Println("  difficulty:", prob.Difficulty)
		}
		fmt.Println("next: solve it in", filepath.Join(dir, "go", "solution.go"))
		return nil
	},
}

func readProblem() (parser.Problem, error) {
	switch {
	case addEML != "":
		f, err := os.Open(addEML)
		if err != nil {
			return parser.Problem{}, err
		}
		defer f.Close()
		return parser.ParseEML(f)
	case addText != "":
		return parser.ParseText(addText), nil
	default:
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return parser.Problem{}, err
		}
		if len(raw) == 0 {
			return parser.Problem{}, errors.New("no input: pass --eml, --text, or pipe the email on stdin")
		}
		return parser.ParseText(string(raw)), nil
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list problem folders with their tracked numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := workspace.NewGenerator(problemsDir)
		entries, err := gen.List()
		if err != nil {
			return err
		}
		store, err := openLedger()
		if err != nil {
			return err
		}
		defer store.Close()
		all, err := store.All(cmd.Context())
		if err != nil {
			return err
		}

		for _, e := range entries {
			tag := "[  ???  ]"
			if rec, ok := all[e.Dir]; ok && rec.Number > 0 {
				tag = fmt.Sprintf("[DCP #%d]", rec.Number)
			}
			line := fmt.Sprintf("%s %s", tag, e.Dir)
			if e.Title != "" {
				line += " - " + e.Title
			}
			if e.Company != "" {
				line += " (by " + e.Company + ")"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addEML, "eml", "", "path to a raw .eml file")
	addCmd.Flags().StringVar(&addText, "text", "", "problem text to parse directly")
	addCmd.Flags().StringVar(&addDate, "date", "", "problem date as YYYY-MM-DD (default today)")
}
