package service

import (
	"maps"
	"sync"
	"time"

	"github.com/KevinKolb/CableGuide/internal/modules/session/domain"
	"github.com/KevinKolb/CableGuide/internal/modules/session/repository"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/KevinKolb/CableGuide/internal/shared/errors"
	"github.com/google/uuid"
)

// Service owns the live sessions and the persisted visit counter.
// Sessions are in-memory only; a reload starts fresh.
type Service struct {
	cfg      *config.Config
	visits   repository.VisitRepository
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// New creates a new session service
func New(cfg *config.Config, visits repository.VisitRepository) *Service {
	return &Service{
		cfg:      cfg,
		visits:   visits,
		sessions: make(map[string]*domain.Session),
	}
}

// Create starts a new session for a page load and puts it straight
// into auto-scroll. Stale sessions are reaped here so the map cannot
// grow without bound over page loads.
func (s *Service) Create(loopHeight float64) domain.Session {
	sess := domain.NewSession(uuid.NewString(), loopHeight)
	sess.StartAuto()
	now := time.Now()
	sess.LastActive = now

	s.mu.Lock()
	s.evict(now)
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess)
}

// evict drops sessions idle past the TTL, then the stalest entries
// until the map is back under the cap. Caller holds mu.
func (s *Service) evict(now time.Time) {
	if ttl := time.Duration(s.cfg.SessionTTL) * time.Second; ttl > 0 {
		for id, sess := range s.sessions {
			if now.Sub(sess.LastActive) > ttl {
				delete(s.sessions, id)
			}
		}
	}
	if s.cfg.SessionCap <= 0 {
		return
	}
	for len(s.sessions) >= s.cfg.SessionCap {
		var staleID string
		var stale time.Time
		for id, sess := range s.sessions {
			if staleID == "" || sess.LastActive.Before(stale) {
				staleID, stale = id, sess.LastActive
			}
		}
		delete(s.sessions, staleID)
	}
}

// Get returns a snapshot of a session's state
func (s *Service) Get(id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	return snapshot(sess), nil
}

// Step advances auto-scroll by one configured increment
func (s *Service) Step(id string) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.Step(s.cfg.ScrollStepPx)
	})
}

// BeginDrag suspends auto-scroll and anchors the pointer
func (s *Service) BeginDrag(id string, y float64) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.BeginDrag(y)
	})
}

// DragTo moves the offset relative to the drag anchor
func (s *Service) DragTo(id string, y float64) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.DragTo(y)
	})
}

// EndDrag releases the drag and resumes auto-scroll
func (s *Service) EndDrag(id string) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.EndDrag()
	})
}

// SetFullscreen flips the fullscreen flag
func (s *Service) SetFullscreen(id string, on bool) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.SetFullscreen(on)
	})
}

// ToggleChannel flips a channel row's visibility
func (s *Service) ToggleChannel(id, number string) (domain.Session, error) {
	return s.update(id, func(sess *domain.Session) {
		sess.ToggleChannel(number)
	})
}

// RecordVisit bumps the persisted visit counter
func (s *Service) RecordVisit() (int64, error) {
	return s.visits.Increment()
}

func (s *Service) update(id string, fn func(*domain.Session)) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, errors.ErrSessionNotFound
	}
	fn(sess)
	sess.LastActive = time.Now()
	return snapshot(sess), nil
}

func snapshot(sess *domain.Session) domain.Session {
	dup := *sess
	dup.Hidden = maps.Clone(sess.Hidden)
	return dup
}
