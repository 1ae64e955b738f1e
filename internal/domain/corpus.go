package domain

// CorpusEntry is a canonical question/answer pair with a precomputed
// embedding. The set of entries defines the retrieval index and is
// read-only after load.
type CorpusEntry struct {
	Content   string    `json:"content"`
	Answer    string    `json:"answer"`
	Embedding []float32 `json:"embedding,omitempty"`
}
