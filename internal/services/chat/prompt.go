package chat

import (
	"fmt"
	"strings"
)

// NoContextPlaceholder stands in for retrieval context when a similarity
// query returns nothing (empty document or no match). The model is told
// explicitly that no grounding context was found so it can decline.
const NoContextPlaceholder = "No relevant context was found in the document for this question."

// systemPromptTemplate grounds the model in the retrieved chunks and
// instructs it to decline when the context cannot support an answer.
const systemPromptTemplate = `You are a helpful assistant answering questions about an uploaded document.

Use only the following document excerpts to answer the user's question:

%s

If the excerpts are insufficient or irrelevant to the question, say that you cannot answer based on the document instead of guessing. Do not use outside knowledge.`

// buildSystemPrompt assembles the grounded system message from retrieved
// chunks, substituting the placeholder when nothing was retrieved.
func buildSystemPrompt(contexts []string) string {
	contextBlock := NoContextPlaceholder
	if len(contexts) > 0 {
		contextBlock = strings.Join(contexts, "\n")
	}
	return fmt.Sprintf(systemPromptTemplate, contextBlock)
}
