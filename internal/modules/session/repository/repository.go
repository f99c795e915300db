package repository

// VisitRepository defines the interface for the persisted visit counter,
// the only value that survives a reload
type VisitRepository interface {
	Increment() (int64, error)
	Count() (int64, error)
}
