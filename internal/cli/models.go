package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docchat/internal/adapter/ollama"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the Ollama server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		llm := ollama.NewLLM(cfg.Ollama.BaseURL, cfg.Ollama.Model, time.Duration(cfg.Ollama.TimeoutSecs)*time.Second)

		names, err := llm.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		if len(names) == 0 {
			fmt.Println("No models installed. Pull one with: ollama pull llama3.2")
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == cfg.Ollama.Model {
				marker = "* "
			}
			fmt.Println(marker + name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
