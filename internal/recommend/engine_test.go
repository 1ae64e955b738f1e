package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/corvitlabs/support-bot/internal/domain"
	"github.com/corvitlabs/support-bot/internal/index"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHistory struct {
	recent []string
	err    error
}

func (s *stubHistory) Append(userID, userText, botText, sessionID string) error { return nil }

func (s *stubHistory) RecentUserMessages(userID, sessionID string, limit int) ([]string, error) {
	return s.recent, s.err
}

func (s *stubHistory) Sessions(userID string) ([]domain.ChatSession, error) { return nil, nil }

func (s *stubHistory) DeleteSession(userID, title string) error { return nil }

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return 2 }

func newKeywordEngine(history domain.HistoryStore) *Engine {
	return NewEngine(history, nil, nil, zerolog.Nop())
}

func TestRecommend_DominantCategoryWins(t *testing.T) {
	history := &stubHistory{recent: []string{
		"tell me about ccna",
		"is networking a good field",
		"what about cybersecurity",
	}}

	got := newKeywordEngine(history).Recommend(context.Background(), "a@b.com", "")

	assert.Contains(t, got, "CCNA course, covering VLANs, OSPF")
	assert.Contains(t, got, "Based on your interest in networking,")
}

func TestRecommend_TieGoesToEarliestCategory(t *testing.T) {
	history := &stubHistory{recent: []string{
		"python coding help",
		"is ceh worth it",
	}}

	got := newKeywordEngine(history).Recommend(context.Background(), "a@b.com", "")

	assert.Contains(t, got, "Since you're interested in programming,")
}

func TestRecommend_NoHistory(t *testing.T) {
	got := newKeywordEngine(&stubHistory{}).Recommend(context.Background(), "a@b.com", "")
	assert.Equal(t, NoHistoryReply, got)
}

func TestRecommend_OffTopicHistory(t *testing.T) {
	history := &stubHistory{recent: []string{
		"how do I get better at cooking",
		"tell me a joke",
	}}

	got := newKeywordEngine(history).Recommend(context.Background(), "a@b.com", "")
	assert.Equal(t, OffTopicReply, got)
}

func TestRecommend_GeneralHistoryGetsTrendPitch(t *testing.T) {
	history := &stubHistory{recent: []string{"hello there", "how are you"}}

	got := newKeywordEngine(history).Recommend(context.Background(), "a@b.com", "")

	assert.Contains(t, got, "Based on current tech trends,")
}

func TestRecommend_HistoryErrorIsTerminal(t *testing.T) {
	history := &stubHistory{err: errors.New("disk gone")}
	got := newKeywordEngine(history).Recommend(context.Background(), "a@b.com", "")
	assert.Equal(t, InternalErrorReply, got)
}

func TestRecommend_NeighborClassifiesVagueQuery(t *testing.T) {
	// The history never names a category, but its nearest corpus entry
	// is about CCNA, so the profile inherits networking.
	idx, err := index.Build(context.Background(), []domain.CorpusEntry{
		{Content: "What does the CCNA networking course cover?", Answer: "Routing, switching and VLANs.", Embedding: []float32{1, 0}},
	}, &stubEmbedder{})
	require.NoError(t, err)

	history := &stubHistory{recent: []string{"what do you teach in that course"}}
	engine := NewEngine(history, &stubEmbedder{vector: []float32{1, 0}}, idx, zerolog.Nop())

	got := engine.Recommend(context.Background(), "a@b.com", "")

	// A close neighbor also personalizes the lead with its stored answer.
	assert.Contains(t, got, "Routing, switching and VLANs.")
	assert.Contains(t, got, "CCNA course, covering VLANs, OSPF")
}

func TestRecommend_DistantNeighborIsIgnored(t *testing.T) {
	idx, err := index.Build(context.Background(), []domain.CorpusEntry{
		{Content: "What does the CCNA networking course cover?", Answer: "Routing.", Embedding: []float32{1, 0}},
	}, &stubEmbedder{})
	require.NoError(t, err)

	// Orthogonal query vector: distance 1.0, well past the ceiling.
	history := &stubHistory{recent: []string{"hmm"}}
	engine := NewEngine(history, &stubEmbedder{vector: []float32{0, 1}}, idx, zerolog.Nop())

	got := engine.Recommend(context.Background(), "a@b.com", "")
	assert.Contains(t, got, "Based on current tech trends,")
}
