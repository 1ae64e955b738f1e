package llm

import "context"

// MaxNewTokens bounds the length of a generated answer.
const MaxNewTokens = 300

// QAPair is one question/answer context block for grounded generation
type QAPair struct {
	Question string
	Answer   string
}

// Request contains answer-generation parameters
type Request struct {
	Question string
	Context  []QAPair
}

// Response contains LLM generation result
type Response struct {
	Answer     string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// GenerateAnswer generates a grounded answer for the question
	GenerateAnswer(ctx context.Context, req Request, model string) (*Response, error)
}

// ProviderFactory creates a new provider instance
type ProviderFactory func() Provider
