package service

import (
	"log/slog"
	"time"

	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
	"github.com/KevinKolb/CableGuide/internal/modules/guide/repository"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/samber/oops"
)

// Service handles guide business logic
type Service struct {
	cfg  *config.Config
	repo repository.Repository
}

// Airing pairs a channel with the show currently on the air
type Airing struct {
	Channel domain.Channel
	Show    domain.Show
	Start   time.Time
}

// New creates a new guide service
func New(cfg *config.Config, repo repository.Repository) *Service {
	return &Service{
		cfg:  cfg,
		repo: repo,
	}
}

// Current returns the guide as stored
func (s *Service) Current() (*domain.Guide, error) {
	return s.repo.Load()
}

// TimeSlots returns the slot header labels for the display window,
// starting at the top of the current hour
func (s *Service) TimeSlots(now time.Time) []string {
	hour := now.Truncate(time.Hour)
	slots := make([]string, 0, s.cfg.SlotCount)
	for i := 0; i < s.cfg.SlotCount; i++ {
		t := hour.Add(time.Duration(i*s.cfg.SlotMinutes) * time.Minute)
		slots = append(slots, t.Format("3:04 PM"))
	}
	return slots
}

// ApplyUpdate merges freshly fetched channels into the stored guide.
// Updated channels overwrite, new channels append, channels absent from
// the update are preserved.
func (s *Service) ApplyUpdate(channels []domain.Channel, now time.Time) error {
	guide, err := s.repo.Load()
	if err != nil {
		return oops.With("context", "loading guide before update").Wrap(err)
	}

	added, updated := 0, 0
	for _, ch := range channels {
		if existing, ok := guide.ChannelByNumber(ch.Number); ok {
			*existing = ch
			updated++
		} else {
			guide.Channels = append(guide.Channels, ch)
			added++
		}
	}

	guide.Date = now.Format("01/02/06")
	guide.TimeSlots = s.TimeSlots(now)

	if err := s.repo.Save(guide); err != nil {
		return oops.With("context", "saving updated guide").Wrap(err)
	}

	slog.Info("Guide updated", "added", added, "updated", updated, "total", len(guide.Channels))
	return nil
}

// NowAiring returns the show on the air right now for each channel.
// Channels with nothing scheduled at this moment are skipped.
func (s *Service) NowAiring(now time.Time) ([]Airing, error) {
	guide, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	var airing []Airing
	for _, ch := range guide.Channels {
		for _, show := range ch.Shows {
			start, err := parseClock(show.Start, now)
			if err != nil {
				continue
			}
			end := start.Add(time.Duration(show.Duration) * time.Minute)
			if !now.Before(start) && now.Before(end) {
				airing = append(airing, Airing{Channel: ch, Show: show, Start: start})
				break
			}
		}
	}

	return airing, nil
}

// parseClock anchors a "3:04 PM" label to the date of ref.
func parseClock(label string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("3:04 PM", label)
	if err != nil {
		return time.Time{}, oops.With("label", label).Wrap(err)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}
