package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetchRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Alpha", "skills": []},
			{"id": "2", "name": "Beta", "skills": []}
		]`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RatePerSec: 100})

	chars, err := client.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster() error: %v", err)
	}
	if len(chars) != 2 {
		t.Fatalf("got %d characters, want 2", len(chars))
	}
	if chars[0].ID != "1" || chars[1].ID != "2" {
		t.Errorf("ids = %s, %s; numeric and string ids should both normalize", chars[0].ID, chars[1].ID)
	}
}

func TestFetchRosterBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RatePerSec: 100})
	if _, err := client.FetchRoster(context.Background()); err == nil {
		t.Error("FetchRoster() accepted a non-array payload")
	}
}

func TestFetchCharacterNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RatePerSec: 100})

	_, err := client.FetchCharacter(context.Background(), "missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestDoRequestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RatePerSec: 1000, Timeout: 5 * time.Second})

	chars, err := client.FetchRoster(context.Background())
	if err != nil {
		t.Fatalf("FetchRoster() error after retries: %v", err)
	}
	if len(chars) != 0 {
		t.Errorf("got %v, want empty roster", chars)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}
