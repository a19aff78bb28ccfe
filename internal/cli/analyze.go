package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docchat/internal/adapter/analyzer"
	"docchat/internal/adapter/extract"
	"docchat/internal/adapter/fsys"
	"docchat/internal/usecase"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print document statistics",
	Long: `Extract a document's text and print its statistics without starting a
chat session.

Examples:
  docchat analyze report.pdf
  docchat analyze notes.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path, err := fsys.Resolve(args[0], usecase.ModeAnalysis.AllowedExtensions())
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := extract.New().Extract(data, path)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", path, err)
	}

	stats := analyzer.Analyze(text)

	if analyzeJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Document: %s\n", path)
	fmt.Printf("  Words:            %d\n", stats.WordCount)
	fmt.Printf("  Characters:       %d\n", stats.CharacterCount)
	fmt.Printf("  Sentences:        %d\n", stats.SentenceCount)
	fmt.Printf("  Paragraphs:       %d\n", stats.ParagraphCount)
	fmt.Printf("  Unique words:     %d\n", stats.UniqueWords)
	fmt.Printf("  Avg word length:  %.2f\n", stats.AvgWordLength)
	return nil
}
