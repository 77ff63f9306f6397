package subscribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	logx "dcptrack/pkg/logx"
)

func newTestSubscriber(endpoint string) *Subscriber {
	s := New(endpoint, logx.Nop())
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	s.retryDelay = 0
	return s
}

func TestSubscribeSuccess(t *testing.T) {
	t.Parallel()
	var gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotEmail = r.PostForm.Get("email")
		_, _ = w.Write([]byte("<html>Thank you for subscribing!</html>"))
	}))
	defer srv.Close()

	s := newTestSubscriber(srv.URL)
	if err := s.Subscribe(context.Background(), "me@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if gotEmail != "me@example.com" {
		t.Fatalf("posted email = %q", gotEmail)
	}
}

func TestSubscribeRetriesServerErrors(t *testing.T) {
	t.Parallel()
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("subscribed"))
	}))
	defer srv.Close()

	s := newTestSubscriber(srv.URL)
	if err := s.Subscribe(context.Background(), "me@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestSubscribeClientErrorIsFinal(t *testing.T) {
	t.Parallel()
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := newTestSubscriber(srv.URL)
	if err := s.Subscribe(context.Background(), "me@example.com"); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1 (4xx must not retry)", attempts)
	}
}

func TestSubscribeRejectedWithoutKeyword(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>home page</html>"))
	}))
	defer srv.Close()

	s := newTestSubscriber(srv.URL)
	err := s.Subscribe(context.Background(), "me@example.com")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestSubscribeEmptyEmail(t *testing.T) {
	t.Parallel()
	s := newTestSubscriber("http://unused.invalid")
	if err := s.Subscribe(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty email")
	}
}
