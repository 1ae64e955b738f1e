// Package index holds the in-memory retrieval index over the QnA corpus.
// The corpus is a few hundred entries, so a flat scan with cosine
// similarity is exact and fast enough; nothing moves or gets re-embedded
// after load.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/embedding"
)

// Result is a scored corpus entry. Score is cosine similarity in [-1, 1];
// Distance is 1 - Score, so smaller means closer.
type Result struct {
	Entry    domain.CorpusEntry
	Score    float64
	Distance float64
}

// Index is a read-only nearest-neighbor index over corpus entries
type Index struct {
	entries []domain.CorpusEntry
}

// LoadCorpus reads corpus entries from a JSON file. A missing file is
// treated as an empty corpus, not an error.
func LoadCorpus(path string) ([]domain.CorpusEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var entries []domain.CorpusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return entries, nil
}

// Build constructs the index, embedding any entries that were shipped
// without a precomputed vector.
func Build(ctx context.Context, entries []domain.CorpusEntry, embedder embedding.Embedder) (*Index, error) {
	var missing []int
	var texts []string
	for i, e := range entries {
		if len(e.Embedding) == 0 {
			missing = append(missing, i)
			texts = append(texts, e.Content)
		}
	}

	if len(missing) > 0 {
		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus: %w", err)
		}
		for j, i := range missing {
			entries[i].Embedding = vectors[j]
		}
	}

	return &Index{entries: entries}, nil
}

// Len returns the number of indexed entries
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns the top-k entries by cosine similarity to the query
// vector, best first.
func (ix *Index) Search(query []float32, k int) []Result {
	if len(ix.entries) == 0 || k <= 0 {
		return nil
	}

	results := make([]Result, 0, len(ix.entries))
	for _, e := range ix.entries {
		score := CosineSimilarity(query, e.Embedding)
		results = append(results, Result{Entry: e, Score: score, Distance: 1 - score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// Nearest returns the single closest entry, if any
func (ix *Index) Nearest(query []float32) (Result, bool) {
	top := ix.Search(query, 1)
	if len(top) == 0 {
		return Result{}, false
	}
	return top[0], true
}

// CosineSimilarity computes cosine similarity between two vectors.
// Mismatched or zero-length vectors score zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
