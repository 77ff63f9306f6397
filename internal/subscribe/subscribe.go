// Package subscribe signs an email address up for the problem-of-the-day
// mailing list by posting the signup form directly, the same request the
// website's subscribe box sends.
package subscribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	logx "dcptrack/pkg/logx"
)

// ErrRejected reports a response that does not look like a successful signup.
var ErrRejected = errors.New("subscription not confirmed")

const (
	defaultTimeout = 15 * time.Second
	maxAttempts    = 3
	// responses are marketing pages; don't read more than we need
	maxBodyBytes = 256 << 10
)

// The signup page confirms with marketing copy, not a status field, so
// success detection is keyword sniffing.
var successMarkers = []string{"success", "thank", "subscribed"}

type Subscriber struct {
	endpoint   string
	client     *http.Client
	limiter    *rate.Limiter
	retryDelay time.Duration
	log        logx.Logger
}

// New builds a Subscriber for the given form endpoint.
// Requests are paced to one per 10 seconds; the endpoint is somebody
// else's website.
func New(endpoint string, log logx.Logger) *Subscriber {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Subscriber{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(10*time.Second), 1),
		retryDelay: 2 * time.Second,
		log:        log,
	}
}

// SetClient replaces the HTTP client (tests).
func (s *Subscriber) SetClient(c *http.Client) { s.client = c }

// Subscribe posts the email address to the signup form. Transient transport
// or 5xx failures are retried a few times; a response that carries no
// success keyword returns ErrRejected.
func (s *Subscriber) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("empty email address")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		retryable, err := s.post(ctx, email)
		if err == nil {
			s.log.Info("subscription request accepted",
				logx.String("email", email), logx.Int("attempt", attempt))
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		s.log.Warn("subscription attempt failed",
			logx.Int("attempt", attempt), logx.Err(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (s *Subscriber) post(ctx context.Context, email string) (retryable bool, err error) {
	form := url.Values{"email": {email}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	switch {
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("server error: %s", resp.Status)
	case resp.StatusCode >= 400:
		return false, fmt.Errorf("request rejected: %s", resp.Status)
	}

	lower := strings.ToLower(string(body))
	for _, marker := range successMarkers {
		if strings.Contains(lower, marker) {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w (status %s)", ErrRejected, resp.Status)
}
