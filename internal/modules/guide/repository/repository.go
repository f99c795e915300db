package repository

import (
	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
)

// Repository defines the interface for guide persistence
// This abstraction allows easy replacement of storage implementations
// (e.g., XMLStorage -> PostgreSQL -> MongoDB)
type Repository interface {
	Load() (*domain.Guide, error)
	Save(guide *domain.Guide) error
}
