package repository

// Option configures a MemStore.
type Option func(*MemStore)

// WithCapacity bounds how many results the store retains. Older
// results are evicted first. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}
