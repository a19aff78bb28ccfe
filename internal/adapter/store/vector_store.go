// Package store persists vector collections in a local BoltDB file.
package store

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"go.etcd.io/bbolt"

	"docchat/internal/domain"
)

var bucketMeta = []byte("meta")

// BoltIndex stores named collections of (id, text, embedding) triples, one
// bucket per collection. Search is brute-force cosine similarity, which is
// fine at single-document scale.
type BoltIndex struct {
	db *bbolt.DB
}

type storedEntry struct {
	Text   string    `json:"t"`
	Vector []float32 `json:"v"`
}

// Open opens (or creates) the index database at path.
func Open(path string) (*BoltIndex, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltIndex{db: db}, nil
}

func (s *BoltIndex) Close() error {
	return s.db.Close()
}

// Rebuild deletes the collection if present and creates a fresh empty one.
// Called once per document upload; stale entries from a previous document
// must never survive it.
func (s *BoltIndex) Rebuild(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(name)) != nil {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return fmt.Errorf("failed to delete collection %s: %w", name, err)
			}
		}
		if _, err := tx.CreateBucket([]byte(name)); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
		return tx.Bucket(bucketMeta).Delete(dimKey(name))
	})
}

// Add stores all triples in one transaction; the write is durable when Add
// returns.
func (s *BoltIndex) Add(name string, ids []int, texts []string, vectors [][]float32) error {
	if len(ids) != len(texts) || len(ids) != len(vectors) {
		return fmt.Errorf("%w: ids/texts/vectors length mismatch: %d/%d/%d",
			domain.ErrInvalidConfig, len(ids), len(texts), len(vectors))
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
	}
	if len(ids) == 0 {
		return nil
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, name)
		}

		dim, err := s.collectionDim(tx, name)
		if err != nil {
			return err
		}
		if dim == 0 {
			dim = len(vectors[0])
			if err := tx.Bucket(bucketMeta).Put(dimKey(name), []byte(strconv.Itoa(dim))); err != nil {
				return err
			}
		}

		for i, id := range ids {
			if len(vectors[i]) != dim {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", dim, len(vectors[i]))
			}
			data, err := json.Marshal(storedEntry{Text: texts[i], Vector: vectors[i]})
			if err != nil {
				return err
			}
			if err := b.Put(entryKey(id), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Query returns up to k stored texts ranked by cosine similarity to the
// query vector, nearest first. A missing or empty collection yields an empty
// result: the caller treats that as "no context available".
func (s *BoltIndex) Query(name string, vector []float32, k int) ([]string, error) {
	type scored struct {
		text  string
		score float64
	}

	var scores []scored
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return nil
		}

		dim, err := s.collectionDim(tx, name)
		if err != nil {
			return err
		}
		if dim == 0 {
			return nil
		}
		if len(vector) != dim {
			return fmt.Errorf("query dimension mismatch: expected %d, got %d", dim, len(vector))
		}

		return b.ForEach(func(_, v []byte) error {
			var entry storedEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil // skip corrupted entries
			}
			scores = append(scores, scored{
				text:  entry.Text,
				score: cosineSimilarity(vector, entry.Vector),
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]string, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, scores[i].text)
	}
	return results, nil
}

// Count returns the number of entries in the collection; 0 if it is absent.
func (s *BoltIndex) Count(name string) (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltIndex) collectionDim(tx *bbolt.Tx, name string) (int, error) {
	data := tx.Bucket(bucketMeta).Get(dimKey(name))
	if data == nil {
		return 0, nil
	}
	dim, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("corrupt dimension metadata for %s: %w", name, err)
	}
	return dim, nil
}

func entryKey(id int) []byte {
	return []byte(strconv.Itoa(id))
}

func dimKey(name string) []byte {
	return []byte("dim:" + name)
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
