// Package config provides configuration loading for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// CLI flags.
type Config struct {
	// Paths
	Resume  string `json:"resume,omitempty"`   // Path to the source resume YAML
	JobURL  string `json:"job_url,omitempty"`  // URL to fetch the job posting from
	JobFile string `json:"job_file,omitempty"` // Path to a job posting text file
	DataDir string `json:"data_dir,omitempty"` // Directory for per-job output

	// Behavior
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	UseBrowser    bool   `json:"use_browser,omitempty"`    // Use headless browser for script-rendered postings
	ManualReview  bool   `json:"manual_review,omitempty"`  // Pause after saving until the editing flag is cleared
	ReviewTimeout string `json:"review_timeout,omitempty"` // How long to wait for review, e.g. "30m"
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed debug information
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are enforced after merging with CLI flags, not here.
func (c *Config) Validate() error {
	if c.JobURL != "" && c.JobFile != "" {
		return fmt.Errorf("job_url and job_file are mutually exclusive")
	}
	if c.ReviewTimeout != "" {
		if _, err := time.ParseDuration(c.ReviewTimeout); err != nil {
			return fmt.Errorf("invalid review_timeout %q: %w", c.ReviewTimeout, err)
		}
	}
	return nil
}

// ReviewTimeoutDuration parses the review timeout, returning fallback when
// unset.
func (c *Config) ReviewTimeoutDuration(fallback time.Duration) time.Duration {
	if c.ReviewTimeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.ReviewTimeout)
	if err != nil {
		return fallback
	}
	return d
}
