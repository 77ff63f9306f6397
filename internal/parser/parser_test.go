package parser

import (
	"strings"
	"testing"
)

func TestParseTextBasic(t *testing.T) {
	t.Parallel()
	text := `This problem was asked by Google.

Given an array of integers, find the maximum sum of any contiguous subarray.

For example, given [34, -50, 42, 14, -5, 86], return 137 (sum of [42, 14, -5, 86]).
`
	got := ParseText(text)
	if got.Company != "Google" {
		t.Fatalf("Company = %q, want Google", got.Company)
	}
	if !strings.Contains(got.Text, "array of integers") {
		t.Fatalf("statement missing body: %q", got.Text)
	}
}

func TestParseTextNoCompany(t *testing.T) {
	t.Parallel()
	text := `Given a list of numbers, return the largest number.

For example, given [3, 5, 1, 9, 2], return 9.
`
	got := ParseText(text)
	if got.Company != "" {
		t.Fatalf("Company = %q, want empty", got.Company)
	}
	if !strings.Contains(got.Text, "Given a list of numbers") {
		t.Fatalf("statement missing body: %q", got.Text)
	}
}

func TestParseTextStripsNoise(t *testing.T) {
	t.Parallel()
	text := `Good morning! Here's your coding interview problem for today.

This problem was asked by Stripe. It is rated medium.

Given an array of integers, return the first missing positive integer in
linear time and constant space. The array can contain duplicates and
negative numbers as well.

Upgrade to premium for detailed solutions.
Unsubscribe here.
`
	got := ParseText(text)
	if strings.Contains(strings.ToLower(got.Text), "good morning") {
		t.Fatalf("greeting leaked into statement: %q", got.Text)
	}
	if strings.Contains(strings.ToLower(got.Text), "unsubscribe") {
		t.Fatalf("footer leaked into statement: %q", got.Text)
	}
	if got.Company != "Stripe" {
		t.Fatalf("Company = %q, want Stripe", got.Company)
	}
	if got.Difficulty != "Medium" {
		t.Fatalf("Difficulty = %q, want Medium", got.Difficulty)
	}
}

func TestExtractCompany(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want string
	}{
		{"This problem was asked by Google.", "Google"},
		{"This problem was recently asked by Facebook.", "Facebook"},
		{"Asked by Amazon.", "Amazon"},
		{"This problem was asked by Palantir Technologies.", "Palantir Technologies"},
		{"No company here.", ""},
	}
	for _, tt := range tests {
		if got := extractCompany(tt.text); got != tt.want {
			t.Errorf("extractCompany(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractDifficulty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want string
	}{
		{"This is a hard problem.", "Hard"},
		{"This is medium difficulty.", "Medium"},
		{"This is an easy problem.", "Easy"},
		{"No difficulty mentioned.", ""},
	}
	for _, tt := range tests {
		if got := extractDifficulty(tt.text); got != tt.want {
			t.Errorf("extractDifficulty(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()
	got := cleanText("Too   many    spaces\n\n\n\nand lines")
	if strings.Contains(got, "   ") {
		t.Fatalf("space runs survived: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank-line runs survived: %q", got)
	}
}

func TestShortCaptureFallsBackToWholeText(t *testing.T) {
	t.Parallel()
	text := "Find x."
	got := ParseText(text)
	if got.Text != "Find x." {
		t.Fatalf("expected fallback to whole text, got %q", got.Text)
	}
}

func TestHTMLToText(t *testing.T) {
	t.Parallel()
	html := `<html><head><style>p { color: red; }</style></head>
<body><p>This problem was asked by Google.</p>
<p>Given a string, return its reverse &amp; length.</p>
<script>track();</script></body></html>`

	got := htmlToText(html)
	if strings.Contains(got, "color: red") {
		t.Fatalf("style leaked: %q", got)
	}
	if strings.Contains(got, "track()") {
		t.Fatalf("script leaked: %q", got)
	}
	if !strings.Contains(got, "reverse & length") {
		t.Fatalf("entity not decoded: %q", got)
	}
	if strings.Contains(got, "<p>") {
		t.Fatalf("tags survived: %q", got)
	}
}

func TestParseEMLPlainText(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"From: Daily Problem <founders@example.com>",
		"To: me@example.com",
		"Subject: Problem #731 [Easy]",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Good morning! Here is your problem.",
		"",
		"This problem was asked by Airbnb.",
		"",
		"Given a linked list and an integer k, remove the k-th node from the end",
		"of the list and return the head of the list.",
		"",
	}, "\r\n")

	got, err := ParseEML(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseEML error: %v", err)
	}
	if got.Company != "Airbnb" {
		t.Fatalf("Company = %q, want Airbnb", got.Company)
	}
	if got.Difficulty != "Easy" {
		t.Fatalf("Difficulty = %q, want Easy", got.Difficulty)
	}
	if !strings.Contains(got.Text, "linked list") {
		t.Fatalf("statement missing body: %q", got.Text)
	}
}

func TestParseEMLHTMLFallback(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"From: Daily Problem <founders@example.com>",
		"To: me@example.com",
		"Subject: Problem of the day",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<html><body>",
		"<p>This problem was asked by Twitter.</p>",
		"<p>Implement an autocomplete system: given a query string s and a set of",
		"all possible query strings, return all strings in the set that have s",
		"as a prefix.</p>",
		"</body></html>",
		"",
	}, "\r\n")

	got, err := ParseEML(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ParseEML error: %v", err)
	}
	if got.Company != "Twitter" {
		t.Fatalf("Company = %q, want Twitter", got.Company)
	}
	if !strings.Contains(got.Text, "autocomplete") {
		t.Fatalf("statement missing body: %q", got.Text)
	}
}
