package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homework_status_bot/internal/app"
)

type staticSource app.Snapshot

func (s staticSource) Snapshot() app.Snapshot { return app.Snapshot(s) }

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter(staticSource{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("Expected status=ok, got %v", got)
	}
}

func TestStatus(t *testing.T) {
	snap := app.Snapshot{FromDate: 1700000000, LastMessage: "hello", DedupMode: app.DedupSplit, Cycles: 2}
	w := httptest.NewRecorder()
	NewRouter(staticSource(snap)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got app.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.FromDate != snap.FromDate || got.LastMessage != "hello" || got.DedupMode != app.DedupSplit || got.Cycles != 2 {
		t.Errorf("got %+v", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter(staticSource{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/status", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestJSONEncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["error"] == "" {
		t.Errorf("expected error body, got %v", got)
	}
}
