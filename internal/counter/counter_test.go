package counter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_ReadsValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 12345}`))
	}))
	defer srv.Close()

	value, ok := New(srv.URL, time.Second).Fetch(context.Background())
	if !ok || value != 12345 {
		t.Fatalf("Fetch = (%d, %v), want (12345, true)", value, ok)
	}
}

func TestFetch_MalformedBodyIsAbsentNotAnError(t *testing.T) {
	cases := map[string]string{
		"not json":      "counter is down",
		"missing value": `{"count": 3}`,
		"string value":  `{"value": "3"}`,
		"empty body":    "",
	}

	for name, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		if _, ok := New(srv.URL, time.Second).Fetch(context.Background()); ok {
			t.Fatalf("%s: expected no value", name)
		}
		srv.Close()
	}
}

func TestFetch_ErrorStatusIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, ok := New(srv.URL, time.Second).Fetch(context.Background()); ok {
		t.Fatalf("expected no value on 500")
	}
}

func TestFetch_TimeoutIsAbsent(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	if _, ok := New(srv.URL, 50*time.Millisecond).Fetch(context.Background()); ok {
		t.Fatalf("expected no value on timeout")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("fetch did not respect the timeout")
	}
}

func TestFetch_UnreachableHostIsAbsent(t *testing.T) {
	if _, ok := New("http://127.0.0.1:1", 100*time.Millisecond).Fetch(context.Background()); ok {
		t.Fatalf("expected no value when unreachable")
	}
}

func TestFetch_EmptyURLDisablesCounter(t *testing.T) {
	if _, ok := New("", time.Second).Fetch(context.Background()); ok {
		t.Fatalf("expected disabled counter to report no value")
	}
}
