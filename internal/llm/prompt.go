package llm

import (
	"fmt"
	"strings"
)

// RefusalSentence is the fixed reply the model is instructed to use for
// anything outside the institute's scope.
const RefusalSentence = `Sorry, I couldn't find a relevant answer to your question. Corvit offers IT training like CCNA, cybersecurity, and AWS in Islamabad. Interested?`

// BuildPrompt creates the grounded-answer prompt from retrieved context
func BuildPrompt(req Request) string {
	var context strings.Builder
	for _, pair := range req.Context {
		context.WriteString(fmt.Sprintf("Q: %s\nA: %s\n\n", pair.Question, pair.Answer))
	}

	return fmt.Sprintf(`You are a customer support assistant for Corvit Islamabad, specializing in IT training and certifications (e.g., CCNA, CCNP, cybersecurity, AWS, Azure).
Use only the provided context to answer questions about Corvit's services, registration, or courses in Islamabad. For process-related queries (e.g., how to register), provide full steps. For irrelevant or unrelated questions (e.g., cooking, yoga, general knowledge), respond only with: "%s" Do not guess or repeat the question or generate answers outside Corvit's scope. If no relevant answer is found in the context, use the same apology.

Context:
%s
User Question: %s
Answer:`, RefusalSentence, context.String(), req.Question)
}
