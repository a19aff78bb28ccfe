// Package usecase holds the chat session orchestrator and prompt assembly.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docchat/internal/adapter/analyzer"
	"docchat/internal/domain"
	"docchat/internal/port"
)

// Mode selects which of the two chat policies a session runs.
//
// Analysis forwards the full document as context and allows context-free
// chat with no document loaded. Retrieval embeds chunks into the vector
// index, answers from the top-k matches only, and refuses questions until a
// document is indexed. The asymmetry is deliberate and mirrors the two
// front-ends this tool replaces.
type Mode string

const (
	ModeAnalysis  Mode = "analysis"
	ModeRetrieval Mode = "retrieval"
)

// AllowedExtensions returns the upload extensions the mode accepts.
func (m Mode) AllowedExtensions() []string {
	if m == ModeRetrieval {
		return []string{".pdf"}
	}
	return []string{".pdf", ".docx", ".txt"}
}

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota // no document loaded
	StateProcessing
	StateReady // document loaded, chat enabled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

const refusalNotice = "Please upload a document first. Retrieval chat can only answer from an indexed PDF."

// Deps are the injected collaborators of a Session. Embedder and Index are
// only required in retrieval mode.
type Deps struct {
	Extractor  port.Extractor
	Chunker    port.Chunker
	Embedder   port.Embedder
	Index      port.VectorIndex
	LLM        port.LLM
	Collection string
	TopK       int
}

// Session owns the conversation state for one user: the current document,
// the lifecycle state, and the append-only turn history. All methods run to
// completion inline; a session processes one action at a time.
type Session struct {
	mode Mode
	deps Deps

	state   State
	doc     *domain.Document
	history []domain.Message
}

func NewSession(mode Mode, deps Deps) *Session {
	if deps.TopK <= 0 {
		deps.TopK = 3
	}
	return &Session{mode: mode, deps: deps, state: StateIdle}
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) State() State { return s.state }

func (s *Session) Document() *domain.Document { return s.doc }

// History returns a copy of the conversation so far.
func (s *Session) History() []domain.Message {
	return append([]domain.Message(nil), s.history...)
}

// Upload replaces the loaded document with the given file. In retrieval mode
// all chunks are embedded before the collection is rebuilt, so an embedding
// failure leaves the previous document and index untouched. An extraction or
// chunking failure drops to Idle with no document retained.
func (s *Session) Upload(ctx context.Context, name string, data []byte, onProgress func(done, total int)) error {
	if !s.extensionAllowed(name) {
		return fmt.Errorf("%w: %s (accepted: %s)",
			domain.ErrUnsupportedFileType, filepath.Ext(name), strings.Join(s.mode.AllowedExtensions(), ", "))
	}

	prevState, prevDoc := s.state, s.doc
	s.state = StateProcessing

	text, err := s.deps.Extractor.Extract(data, name)
	if err != nil {
		s.state, s.doc = StateIdle, nil
		return fmt.Errorf("extracting %s: %w", name, err)
	}

	chunks, err := s.deps.Chunker.Chunk(text)
	if err != nil {
		s.state, s.doc = StateIdle, nil
		return fmt.Errorf("chunking %s: %w", name, err)
	}

	if s.mode == ModeRetrieval {
		texts := make([]string, len(chunks))
		ids := make([]int, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
			ids[i] = c.ID
		}

		vectors, err := s.deps.Embedder.EmbedAll(ctx, texts, onProgress)
		if err != nil {
			s.state, s.doc = prevState, prevDoc
			return fmt.Errorf("embedding %s: %w", name, err)
		}

		if err := s.deps.Index.Rebuild(s.deps.Collection); err != nil {
			s.state, s.doc = prevState, prevDoc
			return fmt.Errorf("rebuilding collection: %w", err)
		}
		if err := s.deps.Index.Add(s.deps.Collection, ids, texts, vectors); err != nil {
			// The old collection is already gone; fail closed with nothing
			// queryable rather than a half-indexed document.
			s.state, s.doc = StateIdle, nil
			return fmt.Errorf("indexing %s: %w", name, err)
		}
	}

	s.doc = &domain.Document{
		Name:       name,
		Text:       text,
		UploadedAt: time.Now(),
		Analysis:   analyzer.Analyze(text),
		Chunks:     chunks,
	}
	s.state = StateReady
	return nil
}

// Ask answers a user question and appends both turns to the history. Model
// and retrieval failures become the assistant's reply text; the turn is
// still recorded and the session stays usable.
func (s *Session) Ask(ctx context.Context, question string) string {
	answer := s.answer(ctx, question)
	s.history = append(s.history,
		domain.Message{Role: domain.RoleUser, Content: question},
		domain.Message{Role: domain.RoleAssistant, Content: answer},
	)
	return answer
}

func (s *Session) answer(ctx context.Context, question string) string {
	if s.state != StateReady {
		if s.mode == ModeRetrieval {
			// Never call the model without context in retrieval mode.
			return refusalNotice
		}
		return s.generate(ctx, generalPrompt(question))
	}

	if s.mode == ModeRetrieval {
		vec, err := s.deps.Embedder.Embed(ctx, question)
		if err != nil {
			return "Error: " + err.Error()
		}
		contexts, err := s.deps.Index.Query(s.deps.Collection, vec, s.deps.TopK)
		if err != nil {
			return "Error: " + err.Error()
		}
		if len(contexts) == 0 {
			return "No context is available for this question; the document index is empty."
		}
		return s.generate(ctx, retrievalPrompt(contexts, question))
	}

	return s.generate(ctx, fullContextPrompt(s.doc, question))
}

func (s *Session) generate(ctx context.Context, prompt string) string {
	resp, err := s.deps.LLM.Generate(ctx, prompt)
	if err != nil {
		return "Error: " + err.Error()
	}
	return resp
}

// Reset returns to Idle from any state, dropping the document and the
// conversation.
func (s *Session) Reset() {
	s.state = StateIdle
	s.doc = nil
	s.history = nil
}

// ClearHistory clears the conversation but keeps the loaded document.
func (s *Session) ClearHistory() {
	s.history = nil
}

// ChatExport is the serialized snapshot produced by Export.
type ChatExport struct {
	ExportTime    string           `json:"export_time"`
	TotalMessages int              `json:"total_messages"`
	Conversation  []domain.Message `json:"conversation"`
}

// Export serializes the conversation for download.
func (s *Session) Export(now time.Time) ([]byte, error) {
	export := ChatExport{
		ExportTime:    now.Format("2006-01-02 15:04:05"),
		TotalMessages: len(s.history),
		Conversation:  s.History(),
	}
	return json.MarshalIndent(export, "", "  ")
}

func (s *Session) extensionAllowed(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range s.mode.AllowedExtensions() {
		if ext == allowed {
			return true
		}
	}
	return false
}
