// Package parser extracts problem statements from the daily problem emails.
//
// The emails are marketing-grade HTML with an inconsistent plain-text part, so
// extraction is heuristic: strip the greeting and footer, keep the lines that
// look like a problem statement, and pull company/difficulty attribution out
// of the surrounding prose.
package parser

import (
	"io"
	"regexp"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// Problem is the parsed result. Company and Difficulty are empty when the
// email does not mention them.
type Problem struct {
	Text       string
	Company    string
	Difficulty string
}

var (
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`This problem was asked by ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`This problem was recently asked by ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		regexp.MustCompile(`Asked by ([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	}

	blankRunRe = regexp.MustCompile(`\n\s*\n`)
	spaceRunRe = regexp.MustCompile(` +`)
)

// skip lines carrying these markers: greeting before the problem, footer after it.
var noiseMarkers = []string{
	"good morning",
	"good evening",
	"unsubscribe",
	"daily coding problem",
	"upgrade to premium",
}

// problem statements almost always open with one of these.
var statementMarkers = []string{
	"this problem was asked",
	"given",
	"return",
	"find",
	"implement",
	"write",
}

// ParseEML reads an RFC 5322 message and parses the problem out of its body.
// The text/plain part wins; text/html is the fallback, run through a tag
// stripper first.
func ParseEML(r io.Reader) (Problem, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return Problem{}, err
	}
	subject, _ := mr.Header.Subject()

	var plain, html string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Problem{}, err
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		ct, _, err := h.ContentType()
		if err != nil {
			continue
		}
		switch ct {
		case "text/plain":
			if plain == "" {
				b, _ := io.ReadAll(p.Body)
				plain = string(b)
			}
		case "text/html":
			if html == "" {
				b, _ := io.ReadAll(p.Body)
				html = string(b)
			}
		}
	}

	body := plain
	if body == "" {
		body = htmlToText(html)
	}
	p := ParseText(body)
	// The subject usually carries the difficulty tag ("Problem #731 [Easy]")
	// even when the body does not repeat it.
	if p.Difficulty == "" {
		p.Difficulty = extractDifficulty(subject)
	}
	return p, nil
}

// ParseText parses a problem statement from raw text.
func ParseText(text string) Problem {
	text = cleanText(text)
	return Problem{
		Text:       extractStatement(text),
		Company:    extractCompany(text),
		Difficulty: extractDifficulty(text),
	}
}

func cleanText(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractStatement keeps the lines between the greeting and the footer.
// When the capture comes out suspiciously short the whole text is returned,
// which is the safer failure mode for a template the user will edit anyway.
func extractStatement(text string) string {
	var kept []string
	inProblem := false

scan:
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		for _, marker := range noiseMarkers {
			if strings.Contains(lower, marker) {
				if inProblem {
					// footer reached
					break scan
				}
				continue scan
			}
		}

		if strings.TrimSpace(line) == "" && !inProblem {
			continue
		}
		if !inProblem {
			for _, marker := range statementMarkers {
				if strings.Contains(lower, marker) {
					inProblem = true
					break
				}
			}
		}
		if inProblem {
			kept = append(kept, line)
		}
	}

	statement := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(statement) < 50 {
		return text
	}
	return statement
}

func extractCompany(text string) string {
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractDifficulty(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hard"):
		return "Hard"
	case strings.Contains(lower, "medium"):
		return "Medium"
	case strings.Contains(lower, "easy"):
		return "Easy"
	default:
		return ""
	}
}
