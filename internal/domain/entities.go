package domain

import "time"

// Document is the currently loaded document. It is created once per upload,
// never mutated, and replaced wholesale on re-upload or reset.
type Document struct {
	Name       string
	Text       string
	UploadedAt time.Time
	Analysis   Analysis
	Chunks     []Chunk
}

// Chunk is a contiguous, possibly overlapping segment of a document's text.
// IDs are sequential and 0-based; ordering matches position in the document.
type Chunk struct {
	ID        int
	Text      string
	WordCount int
	CharCount int
}

// Analysis holds descriptive statistics over a document's extracted text.
type Analysis struct {
	WordCount      int
	CharacterCount int
	SentenceCount  int
	ParagraphCount int
	AvgWordLength  float64
	UniqueWords    int
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. History is append-only for the
// lifetime of a session and never persisted across restarts.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
