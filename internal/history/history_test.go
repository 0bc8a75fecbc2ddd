package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/codex/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 250*int(time.Millisecond), time.UTC)

	_, err := store.Record(ctx, Build{
		ID:             "b-1",
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		Manifest:       "codex.json",
		ManifestDigest: "abc123",
		OutputDir:      "site",
		Pages:          9,
		Plates:         2,
		Thumbnails:     1,
		Assets:         4,
		Trigger:        TriggerWatch,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.GetByID(ctx, "b-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", got.Duration)
	}
	if got.Pages != 9 || got.Plates != 2 || got.Thumbnails != 1 || got.Assets != 4 {
		t.Errorf("counts = %d/%d/%d/%d, want 9/2/1/4", got.Pages, got.Plates, got.Thumbnails, got.Assets)
	}
	if got.Trigger != TriggerWatch {
		t.Errorf("Trigger = %q, want %q", got.Trigger, TriggerWatch)
	}
	if got.Status != StatusOK {
		t.Errorf("Status = %q, want default %q", got.Status, StatusOK)
	}
	if got.ManifestDigest != "abc123" {
		t.Errorf("ManifestDigest = %q", got.ManifestDigest)
	}
}

func TestRecordGeneratesID(t *testing.T) {
	store := setupStore(t)
	b, err := store.Record(context.Background(), Build{Manifest: "codex.json", OutputDir: "site"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(b.ID) != 36 {
		t.Errorf("generated ID = %q, want a UUID", b.ID)
	}
	if b.StartedAt.IsZero() {
		t.Error("StartedAt should default to now")
	}
	if b.Trigger != TriggerBuild {
		t.Errorf("Trigger = %q, want %q", b.Trigger, TriggerBuild)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	builds := []Build{
		{ID: "a", StartedAt: base, Status: StatusOK, Trigger: TriggerBuild},
		{ID: "b", StartedAt: base.Add(time.Minute), Status: StatusFailed, Error: "manifest codex.json not found: HTTP 404", Trigger: TriggerWatch},
		{ID: "c", StartedAt: base.Add(2 * time.Minute), Status: StatusOK, Trigger: TriggerServe},
		{ID: "d", StartedAt: base.Add(3 * time.Minute), Status: StatusFailed, Trigger: TriggerWatch},
	}
	for _, b := range builds {
		b.Manifest, b.OutputDir = "codex.json", "site"
		if _, err := store.Record(context.Background(), b); err != nil {
			t.Fatalf("Record(%s): %v", b.ID, err)
		}
	}
}

func TestList(t *testing.T) {
	store := setupStore(t)
	seed(t, store)
	ctx := context.Background()
	since := time.Date(2026, 1, 1, 0, 2, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{"d", "c", "b", "a"}},
		{"limit", Filter{Limit: 2}, []string{"d", "c"}},
		{"offset", Filter{Limit: 2, Offset: 2}, []string{"b", "a"}},
		{"status", Filter{Status: StatusFailed}, []string{"d", "b"}},
		{"trigger", Filter{Trigger: TriggerServe}, []string{"c"}},
		{"since", Filter{Since: &since}, []string{"d", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builds, err := store.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(builds) != len(tt.want) {
				t.Fatalf("List = %d builds, want %d", len(builds), len(tt.want))
			}
			for i, b := range builds {
				if b.ID != tt.want[i] {
					t.Errorf("builds[%d] = %q, want %q", i, b.ID, tt.want[i])
				}
			}
		})
	}
}

func TestLastSuccessful(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.LastSuccessful(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty ledger error = %v, want ErrNotFound", err)
	}

	seed(t, store)
	b, err := store.LastSuccessful(ctx)
	if err != nil {
		t.Fatalf("LastSuccessful: %v", err)
	}
	if b.ID != "c" {
		t.Errorf("LastSuccessful = %q, want c", b.ID)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	n, err := store.DeleteBefore(context.Background(), time.Date(2026, 1, 1, 0, 2, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	r := chi.NewRouter()
	RegisterRoutes(r, store)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/builds?status=failed&limit=1")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var builds []Build
	if err := json.NewDecoder(resp.Body).Decode(&builds); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(builds) != 1 || builds[0].ID != "d" {
		t.Errorf("builds = %+v, want [d]", builds)
	}

	resp2, err := http.Get(srv.URL + "/api/builds/b")
	if err != nil {
		t.Fatalf("GET by id: %v", err)
	}
	defer resp2.Body.Close()
	var b Build
	if err := json.NewDecoder(resp2.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Error == "" || b.Status != StatusFailed {
		t.Errorf("build b = %+v, want failed with error", b)
	}

	resp3, err := http.Get(srv.URL + "/api/builds/nope")
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusNotFound {
		t.Errorf("missing build status = %d, want 404", resp3.StatusCode)
	}
}
