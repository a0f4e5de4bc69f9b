// Package main provides the entry point for the resume tailoring CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Tailor a YAML resume to a job posting",
	Long:  "Resume Tailor parses a job posting, rewrites a YAML resume to match it, and saves the result for manual review.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveAPIKey prefers the flag over the environment.
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
}

// newExtractor builds the shared LLM extractor. The returned closer releases
// the underlying client.
func newExtractor(ctx context.Context, apiKey string, log zerolog.Logger) (*llm.Extractor, func(), error) {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	extractor := llm.NewExtractor(client, llm.NewCache(), log)
	return extractor, func() { _ = client.Close() }, nil
}
