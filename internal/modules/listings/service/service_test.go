package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	guideRepo "github.com/KevinKolb/CableGuide/internal/modules/guide/repository"
	guideService "github.com/KevinKolb/CableGuide/internal/modules/guide/service"
	"github.com/KevinKolb/CableGuide/internal/modules/listings/client"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
)

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/lineups":
			w.Write([]byte(`{
				"lineupId": "NY-10001-X",
				"channels": [
					{"number": "CNN", "callSign": "CNN", "name": "CNN"},
					{"number": "ESPN", "callSign": "ESPN", "name": "ESPN"}
				]
			}`))
		case "/lineups/NY-10001-X/listings":
			// CNN airings deliberately out of order
			w.Write([]byte(`{
				"listings": [
					{"channel": "CNN", "airings": [
						{"startTime": "2026-08-29T13:00:00Z", "duration": 60, "title": "Later Show"},
						{"startTime": "2026-08-29T12:00:00Z", "duration": 60, "title": "Earlier Show"}
					]},
					{"channel": "ESPN", "airings": [
						{"startTime": "2026-08-29T12:00:00Z", "duration": 30, "title": "SportsCenter"}
					]}
				]
			}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		ZipCode:        "10001",
		APIKey:         "test-key",
		ListingsAPIURL: server.URL,
		SlotMinutes:    30,
		SlotCount:      8,
	}

	repo, err := guideRepo.NewXMLStorage(filepath.Join(t.TempDir(), "guide.xml"))
	if err != nil {
		t.Fatal(err)
	}
	guide := guideService.New(cfg, repo)

	svc := New(cfg, client.New(server.URL, "test-key"), guide)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	stored, err := guide.Current()
	if err != nil {
		t.Fatal(err)
	}

	if len(stored.Channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(stored.Channels))
	}

	cnn, ok := stored.ChannelByNumber("CNN")
	if !ok {
		t.Fatal("CNN missing")
	}
	if len(cnn.Shows) != 2 {
		t.Fatalf("CNN shows = %d, want 2", len(cnn.Shows))
	}
	if cnn.Shows[0].Title != "Earlier Show" || cnn.Shows[1].Title != "Later Show" {
		t.Errorf("shows not chronological: %q, %q", cnn.Shows[0].Title, cnn.Shows[1].Title)
	}

	espn, ok := stored.ChannelByNumber("ESPN")
	if !ok || espn.Shows[0].Duration != 30 {
		t.Errorf("ESPN = %+v", espn)
	}
}

func TestRefreshNowRecordsOutcome(t *testing.T) {
	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/lineups":
			w.Write([]byte(`{"lineupId": "L1", "channels": [{"number": "CNN", "name": "CNN"}]}`))
		default:
			w.Write([]byte(`{"listings": []}`))
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		ZipCode:        "10001",
		APIKey:         "test-key",
		ListingsAPIURL: server.URL,
		SlotMinutes:    30,
		SlotCount:      8,
	}
	repo, err := guideRepo.NewXMLStorage(filepath.Join(t.TempDir(), "guide.xml"))
	if err != nil {
		t.Fatal(err)
	}
	svc := New(cfg, client.New(server.URL, "test-key"), guideService.New(cfg, repo))

	svc.RefreshNow(context.Background())
	if err := svc.LastError(); err != nil {
		t.Fatalf("LastError after success = %v", err)
	}
	first := svc.LastSync()
	if first.IsZero() {
		t.Fatal("LastSync not recorded after success")
	}

	fail = true
	svc.RefreshNow(context.Background())
	if svc.LastError() == nil {
		t.Error("LastError not recorded after failure")
	}
	if !svc.LastSync().Equal(first) {
		t.Errorf("LastSync changed on failure: %v -> %v", first, svc.LastSync())
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/lineups":
			w.Write([]byte(`{"lineupId": "L1", "channels": []}`))
		default:
			w.Write([]byte(`{"listings": []}`))
		}
	}))
	defer server.Close()

	cfg := &config.Config{
		ZipCode:        "10001",
		APIKey:         "test-key",
		ListingsAPIURL: server.URL,
		UpdateInterval: 3600,
		SlotMinutes:    30,
		SlotCount:      8,
	}
	repo, err := guideRepo.NewXMLStorage(filepath.Join(t.TempDir(), "guide.xml"))
	if err != nil {
		t.Fatal(err)
	}
	svc := New(cfg, client.New(server.URL, "test-key"), guideService.New(cfg, repo))

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		svc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh loop did not stop after context cancel")
	}
}

func TestRefreshFailureKeepsPreviousGuide(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := &config.Config{
		ZipCode:        "10001",
		APIKey:         "bad-key",
		ListingsAPIURL: server.URL,
		SlotMinutes:    30,
		SlotCount:      8,
	}

	repo, err := guideRepo.NewXMLStorage(filepath.Join(t.TempDir(), "guide.xml"))
	if err != nil {
		t.Fatal(err)
	}
	guide := guideService.New(cfg, repo)

	svc := New(cfg, client.New(server.URL, "bad-key"), guide)
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh should fail on auth error")
	}

	// Nothing was written; the guide degrades to empty, not to an error
	stored, err := guide.Current()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Channels) != 0 {
		t.Errorf("channels = %d, want 0", len(stored.Channels))
	}
}
