package qa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPAnswerer_ReturnsSpan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/answer" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req httpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Question != "What are the paid holidays?" {
			t.Errorf("unexpected question %q", req.Question)
		}
		_ = json.NewEncoder(w).Encode(httpResponse{
			Answer: "10 paid holidays", Score: 0.91, Start: 14, End: 30,
		})
	}))
	defer srv.Close()

	a := &HTTPAnswerer{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	got, err := a.Answer(context.Background(), "What are the paid holidays?", "Employees get 10 paid holidays.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "10 paid holidays" || got.Score != 0.91 || got.Start != 14 || got.End != 30 {
		t.Fatalf("unexpected answer: %+v", got)
	}
}

func TestHTTPAnswerer_EmptySpanIsNoAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(httpResponse{Answer: "", Score: 0.02})
	}))
	defer srv.Close()

	a := &HTTPAnswerer{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	_, err := a.Answer(context.Background(), "q", "passage")
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("expected ErrNoAnswer, got %v", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Fatalf("no-answer must not look unavailable")
	}
}

func TestHTTPAnswerer_RetriesOnceThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(httpResponse{Answer: "span", Score: 0.5})
	}))
	defer srv.Close()

	a := &HTTPAnswerer{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	got, err := a.Answer(context.Background(), "q", "some span here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "span" {
		t.Fatalf("unexpected answer: %+v", got)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls)
	}
}

func TestHTTPAnswerer_PersistentFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model failed to load", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := &HTTPAnswerer{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	_, err := a.Answer(context.Background(), "q", "passage")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPAnswerer_TimeoutIsUnavailable(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	a := &HTTPAnswerer{BaseURL: srv.URL, PerRequestTimeout: 20 * time.Millisecond, RetryDelay: time.Millisecond}
	_, err := a.Answer(context.Background(), "q", "passage")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestHTTPAnswerer_ScoreClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(httpResponse{Answer: "span", Score: 1.7})
	}))
	defer srv.Close()

	a := &HTTPAnswerer{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	got, err := a.Answer(context.Background(), "q", "passage with span")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 1 {
		t.Fatalf("expected score clamped to 1, got %v", got.Score)
	}
}

func TestTier(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.95, TierHigh},
		{0.70, TierHigh},
		{0.69, TierMedium},
		{0.40, TierMedium},
		{0.39, TierLow},
		{0, TierLow},
	}
	for _, tc := range cases {
		if got := Tier(tc.score); got != tc.want {
			t.Fatalf("Tier(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
