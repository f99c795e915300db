package repository

import (
	"github.com/KevinKolb/CableGuide/internal/modules/ads/domain"
)

// Repository defines the interface for ad candidate lookup
type Repository interface {
	GetAllAds() ([]domain.Ad, error)
}
