package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/logging"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/storage"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Tailor one resume against many job postings",
	Long:  "Run the tailoring pipeline for every URL in a file, a few postings at a time. Each posting gets its own output directory; one failure does not stop the rest.",
	RunE:  runBatch,
}

var (
	batchResumePath string
	batchURLsFile   string
	batchDataDir    string
	batchAPIKey     string
	batchUseBrowser bool
	batchVerbose    bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchResumePath, "resume", "r", "", "Path to the source resume YAML (required)")
	batchCmd.Flags().StringVarP(&batchURLsFile, "urls", "f", "", "File with one job posting URL per line (required)")
	batchCmd.Flags().StringVarP(&batchDataDir, "data-dir", "d", "data", "Directory for per-job output")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	batchCmd.Flags().BoolVar(&batchUseBrowser, "use-browser", false, "Render postings with a headless browser when plain fetching falls short")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Enable debug logging")
	_ = batchCmd.MarkFlagRequired("resume")
	_ = batchCmd.MarkFlagRequired("urls")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	urls, err := readURLs(batchURLsFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", batchURLsFile)
	}

	apiKey, err := resolveAPIKey(batchAPIKey)
	if err != nil {
		return err
	}

	log := logging.Default(batchVerbose)
	ctx := context.Background()

	extractor, closeClient, err := newExtractor(ctx, apiKey, log)
	if err != nil {
		return err
	}
	defer closeClient()

	store, err := storage.NewStore(batchDataDir)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{Extractor: extractor, Store: store, Log: log}
	collector := pipeline.NewCollector(p)

	for _, url := range urls {
		collector.Submit(ctx, pipeline.RunOptions{
			ResumePath: batchResumePath,
			JobURL:     url,
			APIKey:     apiKey,
			UseBrowser: batchUseBrowser,
			Verbose:    batchVerbose,
		})
	}

	fmt.Printf("Tailoring against %d posting(s)...\n", len(urls))
	collector.Wait()

	failures := 0
	for _, task := range collector.Tasks() {
		switch task.Status {
		case pipeline.TaskSucceeded:
			fmt.Printf("ok   %s -> %s\n", task.JobURL, task.Output)
		default:
			failures++
			fmt.Printf("fail %s: %v\n", task.JobURL, task.Err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d posting(s) failed", failures, len(urls))
	}
	return nil
}

// readURLs loads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URLs file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URLs file: %w", err)
	}
	return urls, nil
}
