package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Question: "How can I register for CCNA?",
		Context: []QAPair{
			{Question: "How can I register for a course?", Answer: "Visit the campus or register online."},
			{Question: "What courses does Corvit offer?", Answer: "CCNA, CCNP, CEH and more."},
		},
	}

	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Q: How can I register for a course?")
	assert.Contains(t, prompt, "A: CCNA, CCNP, CEH and more.")
	assert.Contains(t, prompt, "User Question: How can I register for CCNA?")
	assert.Contains(t, prompt, RefusalSentence)
	assert.True(t, strings.HasSuffix(prompt, "Answer:"))
}

func TestBuildPrompt_NoContext(t *testing.T) {
	prompt := BuildPrompt(Request{Question: "What is the fee?"})
	assert.Contains(t, prompt, "User Question: What is the fee?")
	assert.NotContains(t, prompt, "Q: ")
}
