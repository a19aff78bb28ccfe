package port

// VectorIndex manages named collections of (id, text, embedding) triples and
// answers nearest-neighbour queries by vector similarity.
type VectorIndex interface {
	// Rebuild deletes any existing collection with that name (no error if
	// absent) and creates a fresh empty one.
	Rebuild(name string) error

	// Add stores all triples. ids, texts and vectors must have equal length
	// and ids must be unique within the call. Writes are durable when Add
	// returns.
	Add(name string, ids []int, texts []string, vectors [][]float32) error

	// Query returns up to k stored texts ranked by similarity to the query
	// vector, nearest first. A missing or empty collection yields an empty
	// result, not an error.
	Query(name string, vector []float32, k int) ([]string, error)

	// Count returns the number of entries in the collection.
	Count(name string) (int, error)
}
