package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/logging"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job posting into a structured job description",
	Long:  "Parse a job posting from a URL or text file into a structured job description and save it under the derived job identifier.",
	RunE:  runParseJob,
}

var (
	parseJobURL        string
	parseJobFile       string
	parseJobDataDir    string
	parseJobAPIKey     string
	parseJobUseBrowser bool
	parseJobVerbose    bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobURL, "url", "u", "", "Job posting URL")
	parseJobCmd.Flags().StringVarP(&parseJobFile, "in", "i", "", "Path to a file with the job posting text (alternative to --url)")
	parseJobCmd.Flags().StringVarP(&parseJobDataDir, "data-dir", "d", "data", "Directory for per-job output")
	parseJobCmd.Flags().StringVar(&parseJobAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseJobCmd.Flags().BoolVar(&parseJobUseBrowser, "use-browser", false, "Render the posting with a headless browser when plain fetching falls short")
	parseJobCmd.Flags().BoolVarP(&parseJobVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	if parseJobURL == "" && parseJobFile == "" {
		return fmt.Errorf("either --url or --in is required")
	}
	if parseJobURL != "" && parseJobFile != "" {
		return fmt.Errorf("--url and --in are mutually exclusive")
	}

	apiKey, err := resolveAPIKey(parseJobAPIKey)
	if err != nil {
		return err
	}

	log := logging.Default(parseJobVerbose)
	ctx := context.Background()

	extractor, closeClient, err := newExtractor(ctx, apiKey, log)
	if err != nil {
		return err
	}
	defer closeClient()

	store, err := storage.NewStore(parseJobDataDir)
	if err != nil {
		return err
	}

	parser := parsing.NewParser(extractor, store, nil, parseJobUseBrowser, log)

	var (
		jd    *types.JobDescription
		jobID string
	)
	if parseJobURL != "" {
		jd, jobID, err = parser.ParseURL(ctx, parseJobURL)
	} else {
		var text []byte
		text, err = os.ReadFile(parseJobFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		jd, jobID, err = parser.ParseText(ctx, string(text), "")
	}
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(jd)
	if err != nil {
		return fmt.Errorf("failed to render job description: %w", err)
	}

	fmt.Printf("Job identifier: %s\n\n%s", jobID, out)
	return nil
}
