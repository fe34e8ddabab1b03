package domain

// Service represents a catalog entry for a service that can be reserved
type Service struct {
	ID   int64
	Name string
}
