package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"docchat/internal/domain"
)

// chunkRefPattern matches questions that reference a chunk by index, e.g.
// "what is in chunk 3".
var chunkRefPattern = regexp.MustCompile(`(?i)chunk\s*(\d+)`)

// fullContextPrompt builds the analysis-mode prompt: the whole document,
// chunk by chunk, unless the question names a specific chunk index. An
// out-of-range index produces an explanatory notice as the context rather
// than an error.
func fullContextPrompt(doc *domain.Document, question string) string {
	var context string

	if m := chunkRefPattern.FindStringSubmatch(question); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch {
		case len(doc.Chunks) == 0:
			context = fmt.Sprintf("Chunk %d does not exist. The document has no chunks.", n)
		case n >= len(doc.Chunks):
			context = fmt.Sprintf("Chunk %d does not exist. Document has %d chunks (valid range 0-%d).",
				n, len(doc.Chunks), len(doc.Chunks)-1)
		default:
			c := doc.Chunks[n]
			context = fmt.Sprintf(`Document: %s

Full content of chunk %d:
%s

Chunk statistics:
- Word count: %d
- Character count: %d`, doc.Name, n, c.Text, c.WordCount, c.CharCount)
		}
	} else {
		var b strings.Builder
		fmt.Fprintf(&b, "Document context:\n- Filename: %s\n- Total words: %d\n- Total chunks: %d\n\nAll document chunks:\n",
			doc.Name, doc.Analysis.WordCount, len(doc.Chunks))
		for _, c := range doc.Chunks {
			fmt.Fprintf(&b, "\n[Chunk %d] (%d words)\n%s\n", c.ID, c.WordCount, c.Text)
		}
		context = b.String()
	}

	return fmt.Sprintf(`%s

Question: %s

Instructions:
- Provide complete, detailed information from the document
- List all items and options mentioned, using bullet points for clarity
- If asked about a specific chunk, provide all content from that chunk
- Be thorough; do not truncate or summarize unless asked

Answer:`, context, question)
}

// retrievalPrompt builds the retrieval-mode prompt from the top-k retrieved
// chunk texts. The model is told to answer only from the supplied context.
func retrievalPrompt(contexts []string, question string) string {
	return fmt.Sprintf(`You are a helpful assistant. Answer the question based ONLY on the following context.
If the answer is not in the context, say you don't know.

Context:
%s

Question:
%s`, strings.Join(contexts, "\n\n"), question)
}

// generalPrompt is used by analysis mode when no document is loaded; that
// mode allows context-free chat, unlike retrieval mode which refuses.
func generalPrompt(question string) string {
	return fmt.Sprintf(`Question: %s

Instructions:
- Provide a clear, comprehensive answer
- Be helpful and informative

Answer:`, question)
}
