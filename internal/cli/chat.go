package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docchat/config"
	"docchat/internal/adapter/chunker"
	"docchat/internal/adapter/extract"
	"docchat/internal/adapter/fsys"
	"docchat/internal/adapter/ollama"
	"docchat/internal/adapter/store"
	"docchat/internal/adapter/watch"
	"docchat/internal/port"
	"docchat/internal/tui"
	"docchat/internal/usecase"
)

var (
	chatMode  string
	chatModel string
	chatTopK  int
	chatWatch bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [file]",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session, optionally preloading a document.
The file argument may be a path or a glob pattern; the first matching
document is loaded.

Examples:
  docchat chat                              # chat without a document
  docchat chat report.pdf                   # preload a document
  docchat chat --mode retrieval paper.pdf   # RAG chat over an indexed PDF
  docchat chat --watch notes.txt            # re-ingest when the file changes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatMode, "mode", "m", "", "chat mode: analysis or retrieval (default from config)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "generation model (default from config)")
	chatCmd.Flags().IntVarP(&chatTopK, "top-k", "k", 0, "retrieved chunks per question (default from config)")
	chatCmd.Flags().BoolVarP(&chatWatch, "watch", "w", false, "watch the document file and re-ingest on change")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	applyChatFlags(cfg)

	mode := usecase.Mode(cfg.Chat.Mode)
	if err := cfg.Validate(); err != nil {
		return err
	}

	session, cleanup, err := buildSession(cfg, mode)
	if err != nil {
		return err
	}
	defer cleanup()

	var docPath string
	if len(args) > 0 {
		docPath, err = fsys.Resolve(args[0], mode.AllowedExtensions())
		if err != nil {
			return err
		}
		if err := ingest(session, docPath); err != nil {
			return err
		}
	}

	var changes <-chan struct{}
	if chatWatch {
		if docPath == "" {
			return fmt.Errorf("--watch requires a document file argument")
		}
		watcher, err := watch.New(docPath)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", docPath, err)
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		changes = watcher.Watch(ctx)
	}

	return tui.Run(tui.Options{
		Session:   session,
		DocPath:   docPath,
		Changes:   changes,
		ModelName: cfg.Ollama.Model,
	})
}

func applyChatFlags(cfg *config.Config) {
	if chatMode != "" {
		cfg.Chat.Mode = chatMode
	}
	if chatModel != "" {
		cfg.Ollama.Model = chatModel
	}
	if chatTopK > 0 {
		cfg.Retrieve.TopK = chatTopK
	}
	cfg.ApplyDefaults(cfg.Chat.Mode)
}

// buildSession wires the adapters a session needs for the given mode. The
// returned cleanup closes the vector store; it is a no-op in analysis mode.
func buildSession(cfg *config.Config, mode usecase.Mode) (*usecase.Session, func() error, error) {
	ch, err := buildChunker(cfg)
	if err != nil {
		return nil, nil, err
	}

	timeout := time.Duration(cfg.Ollama.TimeoutSecs) * time.Second
	deps := usecase.Deps{
		Extractor:  extract.New(),
		Chunker:    ch,
		LLM:        ollama.NewLLM(cfg.Ollama.BaseURL, cfg.Ollama.Model, timeout),
		Collection: cfg.Retrieve.Collection,
		TopK:       cfg.Retrieve.TopK,
	}
	cleanup := func() error { return nil }

	if mode == usecase.ModeRetrieval {
		idx, err := store.Open(cfg.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open vector store: %w", err)
		}
		deps.Index = idx
		deps.Embedder = ollama.NewEmbedder(cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel, cfg.Ollama.EmbedFallback, timeout)
		cleanup = idx.Close
	}

	return usecase.NewSession(mode, deps), cleanup, nil
}

func buildChunker(cfg *config.Config) (port.Chunker, error) {
	if cfg.Chunking.Unit == "chars" {
		return chunker.NewCharChunker(cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	return chunker.NewWordChunker(cfg.Chunking.Size, cfg.Chunking.Overlap)
}

// ingest loads a document into the session, showing embedding progress on
// stderr in retrieval mode.
func ingest(session *usecase.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var bar *progressbar.ProgressBar
	onProgress := func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding chunks")
		}
		bar.Set(done)
	}

	if err := session.Upload(context.Background(), path, data, onProgress); err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	doc := session.Document()
	fmt.Fprintf(os.Stderr, "Loaded %s: %d chunks, %d words\n", doc.Name, len(doc.Chunks), doc.Analysis.WordCount)
	return nil
}
