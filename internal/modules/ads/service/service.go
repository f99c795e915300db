package service

import (
	"math/rand/v2"
	"sync"

	"github.com/KevinKolb/CableGuide/internal/modules/ads/domain"
	"github.com/KevinKolb/CableGuide/internal/modules/ads/repository"
	"github.com/KevinKolb/CableGuide/internal/shared/errors"
)

// Service picks one ad per page load, uniformly at random across the
// candidate set. Nothing is persisted between picks.
type Service struct {
	repo repository.Repository
	mu   sync.Mutex
	rng  *rand.Rand
}

// New creates a new ad service
func New(repo repository.Repository, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Service{repo: repo, rng: rng}
}

// Pick selects one ad uniformly at random. ErrNoAds when the
// candidate set is empty.
func (s *Service) Pick() (domain.Ad, error) {
	ads, err := s.repo.GetAllAds()
	if err != nil {
		return domain.Ad{}, err
	}
	if len(ads) == 0 {
		return domain.Ad{}, errors.ErrNoAds
	}

	s.mu.Lock()
	idx := s.rng.IntN(len(ads))
	s.mu.Unlock()

	return ads[idx], nil
}
