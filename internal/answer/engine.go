// Package answer implements the retrieval-augmented answer pipeline for
// open-domain queries: domain gate, vector retrieval, semantic rerank,
// confidence-gated generation.
package answer

import (
	"context"
	"sort"
	"strings"

	"github.com/corvitlabs/support-bot/internal/embedding"
	"github.com/corvitlabs/support-bot/internal/index"
	"github.com/corvitlabs/support-bot/internal/llm"
	"github.com/rs/zerolog"
)

// Confidence gates. Calibrated against the production corpus; do not
// tune without re-running that calibration.
const (
	// MinAnswerSimilarity is the hard floor below which the engine
	// apologizes instead of answering.
	MinAnswerSimilarity = 0.50
	// DirectAnswerSimilarity is the bar above which the top corpus
	// answer is returned verbatim with no generation call.
	DirectAnswerSimilarity = 0.64
)

const (
	retrievalK        = 4
	generationContext = 2
	minGeneratedWords = 5
)

// Terminal replies. Every path through the engine ends in a normal
// answer or exactly one of these strings.
const (
	NoAnswerReply = "I'm sorry, I couldn't find a specific answer to your question at the moment. However, Corvit Systems Islamabad offers a wide range of IT training programs, including CCNA, Cybersecurity, AWS, and many more. If you're looking to enhance your skills or start a career in IT, we'd be happy to help you explore the right course. Would you like to know more about our available training options?"

	GeneralKnowledgeReply = "Sorry, I'm only trained to answer questions about Corvit Islamabad's IT training and services."
	OutOfDomainReply      = "Sorry, I'm only trained to answer questions about Corvit Islamabad."
	OutsideCityReply      = "I'm focused only on Corvit Islamabad. I don't have data for other branches."

	RetrievalErrorReply  = "Error retrieving documents."
	RerankErrorReply     = "Error during reranking."
	GenerationErrorReply = "Error generating response."
)

// Generator produces a grounded answer from a prompt-building request.
// llm.Provider satisfies it.
type Generator interface {
	GenerateAnswer(ctx context.Context, req llm.Request, model string) (*llm.Response, error)
}

// Engine answers open-domain queries against the QnA corpus
type Engine struct {
	retriever embedding.Embedder
	reranker  embedding.Embedder
	idx       *index.Index
	generator Generator
	log       zerolog.Logger
}

// NewEngine creates an answer engine. retriever and reranker may be the
// same embedder; they are injected separately so the rerank similarity
// can come from a different model.
func NewEngine(retriever, reranker embedding.Embedder, idx *index.Index, generator Generator, log zerolog.Logger) *Engine {
	return &Engine{
		retriever: retriever,
		reranker:  reranker,
		idx:       idx,
		generator: generator,
		log:       log.With().Str("component", "answer").Logger(),
	}
}

type rankedEntry struct {
	content    string
	answer     string
	similarity float64
}

// Answer runs the full pipeline for one query. It never returns an
// error: collaborator failures become stage-specific terminal strings.
func (e *Engine) Answer(ctx context.Context, query string) string {
	if isGeneralKnowledge(query) {
		return GeneralKnowledgeReply
	}
	if isOutOfDomain(query) {
		return OutOfDomainReply
	}
	if isOutsideServiceCity(query) {
		return OutsideCityReply
	}

	// Stage 1: retrieval
	vectors, err := e.retriever.Embed(ctx, []string{query})
	if err != nil || len(vectors) != 1 {
		e.log.Error().Err(err).Msg("query embedding failed")
		return RetrievalErrorReply
	}

	retrieved := e.idx.Search(vectors[0], retrievalK)
	if len(retrieved) == 0 {
		e.log.Warn().Str("query", query).Msg("no documents retrieved")
		return NoAnswerReply
	}

	// Stage 2: rerank with the semantic embedder
	ranked, err := e.rerank(ctx, query, retrieved)
	if err != nil {
		e.log.Error().Err(err).Msg("reranking failed")
		return RerankErrorReply
	}

	top := ranked[0]
	e.log.Debug().
		Float64("similarity", top.similarity).
		Str("content", top.content).
		Msg("top reranked candidate")

	// Stage 3: hard filter
	if top.answer == "" || top.similarity < MinAnswerSimilarity {
		return NoAnswerReply
	}

	// Stage 4: high-confidence shortcut, no generation
	if top.similarity >= DirectAnswerSimilarity {
		return CleanOutput(top.answer)
	}

	// Stage 5: generative fallback grounded in the top context pairs
	return e.generate(ctx, query, ranked)
}

func (e *Engine) rerank(ctx context.Context, query string, retrieved []index.Result) ([]rankedEntry, error) {
	texts := make([]string, 0, len(retrieved)+1)
	texts = append(texts, query)
	for _, r := range retrieved {
		texts = append(texts, r.Entry.Content)
	}

	vectors, err := e.reranker.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	queryVec := vectors[0]
	ranked := make([]rankedEntry, 0, len(retrieved))
	for i, r := range retrieved {
		ranked = append(ranked, rankedEntry{
			content:    r.Entry.Content,
			answer:     strings.TrimSpace(r.Entry.Answer),
			similarity: index.CosineSimilarity(queryVec, vectors[i+1]),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].similarity > ranked[j].similarity
	})
	return ranked, nil
}

func (e *Engine) generate(ctx context.Context, query string, ranked []rankedEntry) string {
	n := generationContext
	if n > len(ranked) {
		n = len(ranked)
	}

	pairs := make([]llm.QAPair, 0, n)
	for _, r := range ranked[:n] {
		pairs = append(pairs, llm.QAPair{Question: r.content, Answer: r.answer})
	}

	resp, err := e.generator.GenerateAnswer(ctx, llm.Request{Question: query, Context: pairs}, "")
	if err != nil {
		e.log.Error().Err(err).Msg("generation failed")
		return GenerationErrorReply
	}

	cleaned := CleanOutput(resp.Answer)
	// A degenerate generation falls back to the reranked candidate
	if cleaned == NoAnswerReply || len(strings.Fields(cleaned)) < minGeneratedWords {
		return CleanOutput(ranked[0].answer)
	}
	return cleaned
}
