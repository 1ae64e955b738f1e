package answer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/index"
	"github.com/corvitlabs/support-bot/internal/llm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			v = []float32{1, 0}
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return 2 }

type stubGenerator struct {
	answer string
	err    error
	calls  int
}

func (s *stubGenerator) GenerateAnswer(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Answer: s.answer}, nil
}

// simVector returns a unit vector whose cosine similarity with (1, 0)
// equals sim.
func simVector(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func buildEngine(t *testing.T, rerankSim float64, gen *stubGenerator) (*Engine, *stubEmbedder) {
	t.Helper()

	entries := []domain.CorpusEntry{
		{Content: "What is the CCNA course fee?", Answer: "The CCNA fee depends on the batch.", Embedding: []float32{1, 0}},
		{Content: "How can I register?", Answer: "Visit the Islamabad campus.", Embedding: []float32{0, 1}},
	}
	idx, err := index.Build(context.Background(), entries, &stubEmbedder{})
	require.NoError(t, err)

	retriever := &stubEmbedder{vectors: map[string][]float32{}}
	reranker := &stubEmbedder{vectors: map[string][]float32{
		"What is the CCNA course fee?": simVector(rerankSim),
		"How can I register?":          simVector(rerankSim - 0.2),
	}}

	return NewEngine(retriever, reranker, idx, gen, zerolog.Nop()), retriever
}

func TestAnswer_HighConfidenceSkipsGeneration(t *testing.T) {
	// Generator raises; a high-similarity candidate must never reach it.
	gen := &stubGenerator{err: errors.New("generator must not be called")}
	engine, _ := buildEngine(t, 0.9, gen)

	got := engine.Answer(context.Background(), "ccna fee?")
	assert.Equal(t, "The CCNA fee depends on the batch.", got)
	assert.Zero(t, gen.calls)
}

func TestAnswer_BelowFloorIsExactApology(t *testing.T) {
	gen := &stubGenerator{answer: "ignored"}
	engine, _ := buildEngine(t, 0.3, gen)

	for i := 0; i < 3; i++ {
		got := engine.Answer(context.Background(), "ccna fee?")
		assert.Equal(t, NoAnswerReply, got)
	}
	assert.Zero(t, gen.calls)
}

func TestAnswer_MidBandGenerates(t *testing.T) {
	gen := &stubGenerator{answer: "You can join the CCNA batch after registering at the campus."}
	engine, _ := buildEngine(t, 0.55, gen)

	got := engine.Answer(context.Background(), "ccna fee?")
	assert.Equal(t, "You can join the CCNA batch after registering at the campus.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestAnswer_ShortGenerationFallsBackToCandidate(t *testing.T) {
	gen := &stubGenerator{answer: "Yes."}
	engine, _ := buildEngine(t, 0.55, gen)

	got := engine.Answer(context.Background(), "ccna fee?")
	assert.Equal(t, "The CCNA fee depends on the batch.", got)
}

func TestAnswer_GenerationErrorIsTerminal(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model down")}
	engine, _ := buildEngine(t, 0.55, gen)

	got := engine.Answer(context.Background(), "ccna fee?")
	assert.Equal(t, GenerationErrorReply, got)
}

func TestAnswer_DomainGateBeforeRetrieval(t *testing.T) {
	gen := &stubGenerator{answer: "ignored"}
	engine, retriever := buildEngine(t, 0.9, gen)

	got := engine.Answer(context.Background(), "Tell me about cooking recipes")
	assert.Equal(t, OutOfDomainReply, got)
	assert.Zero(t, retriever.calls, "gate rejections must not retrieve")
}

func TestAnswer_GateVariants(t *testing.T) {
	gen := &stubGenerator{answer: "ignored"}
	engine, _ := buildEngine(t, 0.9, gen)

	assert.Equal(t, GeneralKnowledgeReply, engine.Answer(context.Background(), "What is the capital of France?"))
	assert.Equal(t, OutsideCityReply, engine.Answer(context.Background(), "Do you have classes in Lahore?"))
}

func TestAnswer_RetrievalErrorIsTerminal(t *testing.T) {
	entries := []domain.CorpusEntry{
		{Content: "x", Answer: "y", Embedding: []float32{1, 0}},
	}
	idx, err := index.Build(context.Background(), entries, &stubEmbedder{})
	require.NoError(t, err)

	retriever := &stubEmbedder{err: errors.New("embedding service down")}
	engine := NewEngine(retriever, &stubEmbedder{}, idx, &stubGenerator{}, zerolog.Nop())

	assert.Equal(t, RetrievalErrorReply, engine.Answer(context.Background(), "ccna fee?"))
}

func TestAnswer_RerankErrorIsTerminal(t *testing.T) {
	entries := []domain.CorpusEntry{
		{Content: "x", Answer: "y", Embedding: []float32{1, 0}},
	}
	idx, err := index.Build(context.Background(), entries, &stubEmbedder{})
	require.NoError(t, err)

	reranker := &stubEmbedder{err: errors.New("embedding service down")}
	engine := NewEngine(&stubEmbedder{}, reranker, idx, &stubGenerator{}, zerolog.Nop())

	assert.Equal(t, RerankErrorReply, engine.Answer(context.Background(), "ccna fee?"))
}

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips qa scaffold", "Q: what is ccna?\nA: CCNA is a Cisco certification.", "CCNA is a Cisco certification."},
		{"strips quote marker", "CCNA covers routing. ##end_quote##", "CCNA covers routing."},
		{"collapses whitespace", "CCNA   covers\n\nrouting.", "CCNA covers routing."},
		{"empty falls back", "###", NoAnswerReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanOutput(tt.in))
		})
	}
}
