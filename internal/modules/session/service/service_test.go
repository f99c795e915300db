package service

import (
	"testing"
	"time"

	"github.com/KevinKolb/CableGuide/internal/modules/session/domain"
	"github.com/KevinKolb/CableGuide/internal/modules/session/repository"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/KevinKolb/CableGuide/internal/shared/errors"
)

func testService(t *testing.T) *Service {
	t.Helper()

	visits, err := repository.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(&config.Config{ScrollStepPx: 0.5}, visits)
}

func TestCreateStartsAutoScroll(t *testing.T) {
	svc := testService(t)

	sess := svc.Create(300)
	if sess.ID == "" {
		t.Error("empty session id")
	}
	if sess.Mode != domain.ScrollModeScrolling {
		t.Errorf("mode = %v, want %v", sess.Mode, domain.ScrollModeScrolling)
	}
	if sess.LoopHeight != 300 {
		t.Errorf("loop height = %v", sess.LoopHeight)
	}
}

func TestStepUsesConfiguredIncrement(t *testing.T) {
	svc := testService(t)
	sess := svc.Create(300)

	got, err := svc.Step(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Offset != 0.5 {
		t.Errorf("offset = %v, want 0.5", got.Offset)
	}
}

func TestDragFlow(t *testing.T) {
	svc := testService(t)
	sess := svc.Create(300)

	got, err := svc.BeginDrag(sess.ID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got.Mode != domain.ScrollModeDragging {
		t.Fatalf("mode = %v", got.Mode)
	}

	// Step is a no-op while dragging
	got, _ = svc.Step(sess.ID)
	if got.Offset != 0 {
		t.Errorf("offset advanced during drag: %v", got.Offset)
	}

	got, _ = svc.DragTo(sess.ID, 60)
	if got.Offset != 40 {
		t.Errorf("offset = %v, want 40", got.Offset)
	}

	got, _ = svc.EndDrag(sess.ID)
	if got.Mode != domain.ScrollModeScrolling {
		t.Errorf("mode after release = %v", got.Mode)
	}
}

func TestUnknownSession(t *testing.T) {
	svc := testService(t)

	if _, err := svc.Get("nope"); err != errors.ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.Step("nope"); err != errors.ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestStaleSessionsEvictedOnCreate(t *testing.T) {
	visits, err := repository.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := New(&config.Config{ScrollStepPx: 0.5, SessionTTL: 60, SessionCap: 4096}, visits)

	old := svc.Create(300)
	svc.mu.Lock()
	svc.sessions[old.ID].LastActive = time.Now().Add(-2 * time.Minute)
	svc.mu.Unlock()

	fresh := svc.Create(300)

	if _, err := svc.Get(old.ID); err != errors.ErrSessionNotFound {
		t.Errorf("stale session still present: err = %v", err)
	}
	if _, err := svc.Get(fresh.ID); err != nil {
		t.Errorf("fresh session evicted: %v", err)
	}
}

func TestSessionCapEvictsStalest(t *testing.T) {
	visits, err := repository.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := New(&config.Config{ScrollStepPx: 0.5, SessionTTL: 1800, SessionCap: 2}, visits)

	a := svc.Create(300)
	b := svc.Create(300)
	svc.mu.Lock()
	svc.sessions[a.ID].LastActive = time.Now().Add(-time.Minute)
	svc.mu.Unlock()

	c := svc.Create(300)

	if _, err := svc.Get(a.ID); err != errors.ErrSessionNotFound {
		t.Errorf("stalest session survived the cap: err = %v", err)
	}
	for _, id := range []string{b.ID, c.ID} {
		if _, err := svc.Get(id); err != nil {
			t.Errorf("session %s evicted: %v", id, err)
		}
	}
	svc.mu.RLock()
	if n := len(svc.sessions); n != 2 {
		t.Errorf("session count = %d, want 2", n)
	}
	svc.mu.RUnlock()
}

func TestRecordVisitPersists(t *testing.T) {
	dir := t.TempDir()

	visits, err := repository.NewFileStorage(dir)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(&config.Config{ScrollStepPx: 0.5}, visits)

	if n, err := svc.RecordVisit(); err != nil || n != 1 {
		t.Errorf("first visit = %d, %v", n, err)
	}
	if n, err := svc.RecordVisit(); err != nil || n != 2 {
		t.Errorf("second visit = %d, %v", n, err)
	}

	// A fresh repository over the same directory sees the stored count
	visits2, err := repository.NewFileStorage(dir)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := visits2.Count(); err != nil || n != 2 {
		t.Errorf("reloaded count = %d, %v", n, err)
	}
}
