package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docchat/internal/domain"
)

// Config holds all configuration for the document chat tool.
type Config struct {
	Ollama   OllamaConfig   `yaml:"ollama"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Store    StoreConfig    `yaml:"store"`
	Chat     ChatConfig     `yaml:"chat"`
}

// OllamaConfig holds the local model server configuration.
type OllamaConfig struct {
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	EmbedModel    string `yaml:"embed_model"`
	EmbedFallback string `yaml:"embed_fallback"` // model used when embed_model is unavailable
	TimeoutSecs   int    `yaml:"timeout_secs"`
	Stream        bool   `yaml:"stream"` // reserved; responses are currently non-streaming
}

// ChunkingConfig holds document chunking configuration. Zero values are
// filled per chat mode by ApplyDefaults.
type ChunkingConfig struct {
	Unit    string `yaml:"unit"` // "words" or "chars"
	Size    int    `yaml:"size"`
	Overlap int    `yaml:"overlap"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK       int    `yaml:"top_k"`
	Collection string `yaml:"collection"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ChatConfig holds chat front-end configuration.
type ChatConfig struct {
	Mode string `yaml:"mode"` // "analysis" or "retrieval"
}

// DefaultConfig returns the default configuration. Chunking fields are left
// zero; they depend on the chat mode and are filled by ApplyDefaults.
func DefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:       "http://localhost:11434",
			Model:         "llama3.2",
			EmbedModel:    "nomic-embed-text",
			EmbedFallback: "llama3.2",
			TimeoutSecs:   120,
			Stream:        false,
		},
		Retrieve: RetrieveConfig{
			TopK:       3,
			Collection: "documents",
		},
		Chat: ChatConfig{
			Mode: "analysis",
		},
	}
}

// ApplyDefaults fills unset chunking fields with the defaults of the given
// chat mode: word chunks for analysis, character chunks for retrieval.
func (c *Config) ApplyDefaults(mode string) {
	if c.Chunking.Unit == "" {
		if mode == "retrieval" {
			c.Chunking.Unit = "chars"
		} else {
			c.Chunking.Unit = "words"
		}
	}
	if c.Chunking.Size == 0 {
		if c.Chunking.Unit == "chars" {
			c.Chunking.Size = 1000
			c.Chunking.Overlap = 100
		} else {
			c.Chunking.Size = 500
			c.Chunking.Overlap = 50
		}
	}
}

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if c.Chunking.Unit != "words" && c.Chunking.Unit != "chars" {
		return fmt.Errorf("%w: chunking unit must be \"words\" or \"chars\", got %q",
			domain.ErrInvalidConfig, c.Chunking.Unit)
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap must be in [0, size), got %d", domain.ErrInvalidConfig, c.Chunking.Overlap)
	}
	if c.Chat.Mode != "analysis" && c.Chat.Mode != "retrieval" {
		return fmt.Errorf("%w: chat mode must be \"analysis\" or \"retrieval\", got %q",
			domain.ErrInvalidConfig, c.Chat.Mode)
	}
	if c.Retrieve.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidConfig, c.Retrieve.TopK)
	}
	if c.Ollama.TimeoutSecs <= 0 {
		return fmt.Errorf("%w: timeout_secs must be positive, got %d", domain.ErrInvalidConfig, c.Ollama.TimeoutSecs)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docchat.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docchat.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docchat", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StorePath returns the vector store path, defaulting to
// ~/.docchat/index.db when unset.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".docchat", "index.db")
	}
	return filepath.Join(home, ".docchat", "index.db")
}
