package topstrike

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchFixtures_ForwardsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Origin"); got != "https://play.example.io" {
			t.Errorf("Expected Origin header, got %q", got)
		}
		if got := r.Header.Get("Cookie"); got != "session=abc123" {
			t.Errorf("Expected Cookie header forwarded, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got == "" || got == "Go-http-client/1.1" {
			t.Errorf("Expected browser-profile User-Agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"fixtures":[{"id":1}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://play.example.io", "session=abc123", time.Second)

	body, status, err := client.FetchFixtures(context.Background())
	if err != nil {
		t.Fatalf("FetchFixtures failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if string(body) != `{"fixtures":[{"id":1}]}` {
		t.Errorf("Expected raw body forwarded, got %s", body)
	}
}

func TestFetchFixtures_NoCookieWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Cookie"); got != "" {
			t.Errorf("Expected no Cookie header, got %q", got)
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://play.example.io", "", time.Second)
	if _, _, err := client.FetchFixtures(context.Background()); err != nil {
		t.Fatalf("FetchFixtures failed: %v", err)
	}
}

func TestFetchFixtures_MirrorsUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":"no"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "https://play.example.io", "", time.Second)
	body, status, err := client.FetchFixtures(context.Background())
	if err != nil {
		t.Fatalf("Expected non-2xx to not be an error, got %v", err)
	}
	if status != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", status)
	}
	if string(body) != `{"error":"no"}` {
		t.Errorf("Expected upstream error body, got %s", body)
	}
}
