package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docchat/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with local documents through a local Ollama model",
	Long: `docchat is a terminal front-end for chatting with documents using a
locally running Ollama server. It has two modes: analysis mode sends the full
document as context and reports document statistics, retrieval mode indexes a
PDF into a local vector store and answers from the best-matching chunks.

Example usage:
  docchat chat report.pdf                   # analysis chat over a document
  docchat chat --mode retrieval paper.pdf   # RAG chat over an indexed PDF
  docchat analyze report.docx               # print document statistics
  docchat models                            # list models on the server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			dir, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(dir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// OLLAMA_HOST wins over the config file, matching the server's own
		// convention.
		if host := os.Getenv("OLLAMA_HOST"); host != "" {
			cfg.Ollama.BaseURL = host
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docchat.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}
