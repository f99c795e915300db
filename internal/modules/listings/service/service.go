package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	guideDomain "github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
	guideService "github.com/KevinKolb/CableGuide/internal/modules/guide/service"
	"github.com/KevinKolb/CableGuide/internal/modules/listings/client"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service keeps the stored guide in sync with the listings API.
// A failed refresh leaves the previous guide in place; the error is
// held for the page banner until the next successful cycle.
type Service struct {
	cfg      *config.Config
	client   *client.Client
	guide    *guideService.Service
	mu       sync.RWMutex
	lastErr  error
	lastSync time.Time
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a new listings refresh service
func New(cfg *config.Config, c *client.Client, guide *guideService.Service) *Service {
	return &Service{
		cfg:    cfg,
		client: c,
		guide:  guide,
	}
}

// Start begins periodic refreshing. The loop stops when ctx is
// cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) {
	if !s.cfg.RemoteEnabled() {
		slog.Info("Listings API not configured, serving local guide only")
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.refreshLoop(ctx)
}

// Stop stops refreshing
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// LastError returns the error from the most recent refresh, if any
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LastSync returns the time of the most recent successful refresh
func (s *Service) LastSync() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSync
}

func (s *Service) refreshLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Duration(s.cfg.UpdateInterval) * time.Second)
	defer ticker.Stop()

	// Initial refresh
	s.RefreshNow(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshNow(ctx)
		}
	}
}

// RefreshNow runs one refresh cycle and records the outcome for
// LastError and LastSync.
func (s *Service) RefreshNow(ctx context.Context) {
	err := s.Refresh(ctx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.lastSync = time.Now()
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("Guide refresh failed", "error", err)
	}
}

// Refresh performs one fetch cycle: lineup by ZIP, then listings for
// that lineup, merged into the stored guide. No retries; a single
// failed request aborts the cycle.
func (s *Service) Refresh(ctx context.Context) error {
	lineup, err := s.client.Lineup(ctx, s.cfg.ZipCode)
	if err != nil {
		return oops.With("context", "lineup fetch").Wrap(err)
	}

	hours := s.cfg.SlotCount * s.cfg.SlotMinutes / 60
	if hours < 1 {
		hours = 1
	}

	listings, err := s.client.Listings(ctx, lineup.ID, hours)
	if err != nil {
		return oops.With("lineup_id", lineup.ID, "context", "listings fetch").Wrap(err)
	}

	channels := s.toChannels(lineup, listings)
	if err := s.guide.ApplyUpdate(channels, time.Now()); err != nil {
		return err
	}

	slog.Info("Listings refreshed", "lineup", lineup.ID, "channels", len(channels))
	return nil
}

// toChannels joins lineup channels with their listings and converts
// airings to guide shows in chronological order.
func (s *Service) toChannels(lineup *client.Lineup, listings []client.ChannelListings) []guideDomain.Channel {
	byChannel := lo.SliceToMap(listings, func(l client.ChannelListings) (string, []client.Airing) {
		return l.Channel, l.Airings
	})

	return lo.Map(lineup.Channels, func(ch client.LineupChannel, _ int) guideDomain.Channel {
		airings := byChannel[ch.Number]
		sort.Slice(airings, func(i, j int) bool {
			return airings[i].StartTime.Before(airings[j].StartTime)
		})

		return guideDomain.Channel{
			Number: ch.Number,
			Name:   ch.Name,
			Shows: lo.Map(airings, func(a client.Airing, _ int) guideDomain.Show {
				return guideDomain.Show{
					Start:       a.StartTime.Local().Format("3:04 PM"),
					Duration:    a.Duration,
					Title:       a.Title,
					Description: a.Description,
				}
			}),
		}
	})
}
