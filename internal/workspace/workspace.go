// Package workspace manages the per-day solution folders.
//
// Layout of a generated folder:
//
//	problems/2024_0315/
//	  readme.md        problem statement + attribution
//	  go/solution.go   solution skeleton
//	  go/solution_test.go
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"dcptrack/internal/parser"
)

// ErrExists reports that the folder for a date has already been generated.
var ErrExists = errors.New("problem directory already exists")

// DirName is the folder naming convention for a problem date.
func DirName(date time.Time) string { return date.Format("2006_0102") }

// ParseDate accepts the YYYY-MM-DD form used on the command line.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

type Generator struct {
	Root string
}

func NewGenerator(root string) *Generator {
	if strings.TrimSpace(root) == "" {
		root = "./problems"
	}
	return &Generator{Root: root}
}

// Generate creates the folder for the given date and fills in the templates.
// A zero date means today. Returns the created directory path.
func (g *Generator) Generate(p parser.Problem, date time.Time) (string, error) {
	if date.IsZero() {
		date = time.Now()
	}
	dir := filepath.Join(g.Root, DirName(date))

	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dir)
	} else if !os.IsNotExist(err) {
		return "", err
	}

	goDir := filepath.Join(dir, "go")
	if err := os.MkdirAll(goDir, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte(readmeContent(p)), 0o644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(goDir, "solution.go"), []byte(solutionTemplate), 0o644); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(goDir, "solution_test.go"), []byte(solutionTestTemplate), 0o644); err != nil {
		return "", err
	}
	return dir, nil
}

func readmeContent(p parser.Problem) string {
	var b strings.Builder
	if p.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n\n", p.Difficulty)
	}
	if p.Company != "" {
		fmt.Fprintf(&b, "Asked by: %s\n\n", p.Company)
	}
	b.WriteString(p.Text)
	b.WriteString("\n")
	return b.String()
}

const solutionTemplate = `package solution

// Solution solves the day's problem.
func Solution() any {
	// TODO: implement
	return nil
}
`

const solutionTestTemplate = `package solution

import "testing"

func TestSolution(t *testing.T) {
	t.Skip("add cases once the solution is implemented")
}
`

// Entry is one existing problem folder.
type Entry struct {
	Dir     string // folder name, e.g. "2024_0315"
	Title   string // first markdown heading of readme.md, if any
	Company string
}

// List enumerates the problem folders under Root, sorted by name
// (the naming convention makes that chronological).
func (g *Generator) List() ([]Entry, error) {
	des, err := os.ReadDir(g.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range des {
		if !de.IsDir() {
			continue
		}
		e := Entry{Dir: de.Name()}

		b, err := os.ReadFile(filepath.Join(g.Root, de.Name(), "readme.md"))
		if err == nil {
			e.Title, e.Company = scanReadme(string(b))
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Dir < entries[j].Dir })
	return entries, nil
}

func scanReadme(content string) (title, company string) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if title == "" && strings.HasPrefix(trimmed, "#") {
			title = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
		if company == "" {
			if _, after, ok := strings.Cut(trimmed, "Asked by:"); ok {
				company = strings.TrimRight(strings.TrimSpace(after), "*")
			}
		}
		if title != "" && company != "" {
			break
		}
	}
	return title, company
}
