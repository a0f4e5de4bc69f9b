package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/logging"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/storage"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Run the full tailoring pipeline for one job posting",
	Long:  "Parse a job posting, rewrite the resume's skills, objective, and highlights to match it, and save the tailored resume for review.",
	RunE:  runTailor,
}

var (
	tailorConfigPath    string
	tailorResumePath    string
	tailorJobURL        string
	tailorJobFile       string
	tailorDataDir       string
	tailorAPIKey        string
	tailorUseBrowser    bool
	tailorManualReview  bool
	tailorReviewTimeout time.Duration
	tailorMarkdown      bool
	tailorVerbose       bool
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorConfigPath, "config", "c", "", "Path to a JSON config file; flags override its values")
	tailorCmd.Flags().StringVarP(&tailorResumePath, "resume", "r", "", "Path to the source resume YAML")
	tailorCmd.Flags().StringVarP(&tailorJobURL, "url", "u", "", "Job posting URL")
	tailorCmd.Flags().StringVarP(&tailorJobFile, "job-file", "j", "", "Path to a file with the job posting text (alternative to --url)")
	tailorCmd.Flags().StringVarP(&tailorDataDir, "data-dir", "d", "data", "Directory for per-job output")
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	tailorCmd.Flags().BoolVar(&tailorUseBrowser, "use-browser", false, "Render the posting with a headless browser when plain fetching falls short")
	tailorCmd.Flags().BoolVar(&tailorManualReview, "review", false, "Wait for manual review: edit the saved resume and set editing: false to continue")
	tailorCmd.Flags().DurationVar(&tailorReviewTimeout, "review-timeout", pipeline.DefaultReviewTimeout, "How long to wait for manual review")
	tailorCmd.Flags().BoolVar(&tailorMarkdown, "markdown", false, "Also render the tailored resume as Markdown")
	tailorCmd.Flags().BoolVarP(&tailorVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	if tailorConfigPath != "" {
		if err := applyConfigDefaults(cmd); err != nil {
			return err
		}
	}

	if tailorResumePath == "" {
		return fmt.Errorf("--resume is required (flag or config file)")
	}
	if tailorJobURL == "" && tailorJobFile == "" {
		return fmt.Errorf("either --url or --job-file is required")
	}

	apiKey, err := resolveAPIKey(tailorAPIKey)
	if err != nil {
		return err
	}

	log := logging.Default(tailorVerbose)
	ctx := context.Background()

	extractor, closeClient, err := newExtractor(ctx, apiKey, log)
	if err != nil {
		return err
	}
	defer closeClient()

	store, err := storage.NewStore(tailorDataDir)
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		ResumePath:    tailorResumePath,
		JobURL:        tailorJobURL,
		APIKey:        apiKey,
		UseBrowser:    tailorUseBrowser,
		ManualReview:  tailorManualReview,
		ReviewTimeout: tailorReviewTimeout,
		Verbose:       tailorVerbose,
	}
	if tailorJobFile != "" {
		text, err := os.ReadFile(tailorJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job file: %w", err)
		}
		opts.JobText = string(text)
	}

	p := &pipeline.Pipeline{Extractor: extractor, Store: store, Log: log}
	if tailorMarkdown {
		p.Renderer = rendering.MarkdownRenderer{}
	}

	result, err := p.Run(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Tailored resume saved: %s\n", result.OutputPath)
	if result.Artifact != "" {
		fmt.Printf("Markdown rendering saved: %s\n", result.Artifact)
	}

	return nil
}

// applyConfigDefaults fills in values from the config file for every flag
// the user did not set explicitly.
func applyConfigDefaults(cmd *cobra.Command) error {
	cfg, err := config.Load(tailorConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("resume") && cfg.Resume != "" {
		tailorResumePath = cfg.Resume
	}
	if !flags.Changed("url") && cfg.JobURL != "" {
		tailorJobURL = cfg.JobURL
	}
	if !flags.Changed("job-file") && cfg.JobFile != "" {
		tailorJobFile = cfg.JobFile
	}
	if !flags.Changed("data-dir") && cfg.DataDir != "" {
		tailorDataDir = cfg.DataDir
	}
	if !flags.Changed("api-key") && cfg.APIKey != "" {
		tailorAPIKey = cfg.APIKey
	}
	if !flags.Changed("use-browser") {
		tailorUseBrowser = tailorUseBrowser || cfg.UseBrowser
	}
	if !flags.Changed("review") {
		tailorManualReview = tailorManualReview || cfg.ManualReview
	}
	if !flags.Changed("review-timeout") {
		tailorReviewTimeout = cfg.ReviewTimeoutDuration(tailorReviewTimeout)
	}
	if !flags.Changed("verbose") {
		tailorVerbose = tailorVerbose || cfg.Verbose
	}
	return nil
}
