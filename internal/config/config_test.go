package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"resume": "resume.yaml",
		"job_url": "https://example.com/job",
		"data_dir": "out",
		"use_browser": true,
		"manual_review": true,
		"review_timeout": "45m"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "resume.yaml", cfg.Resume)
	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "out", cfg.DataDir)
	assert.True(t, cfg.UseBrowser)
	assert.True(t, cfg.ManualReview)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 45*time.Minute, cfg.ReviewTimeoutDuration(time.Minute))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate_MutuallyExclusiveSources(t *testing.T) {
	cfg := &Config{JobURL: "https://example.com", JobFile: "job.txt"}
	require.Error(t, cfg.Validate())
}

func TestValidate_BadTimeout(t *testing.T) {
	cfg := &Config{ReviewTimeout: "soon"}
	require.Error(t, cfg.Validate())
}

func TestReviewTimeoutDuration_Fallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, time.Minute, cfg.ReviewTimeoutDuration(time.Minute))

	cfg.ReviewTimeout = "bogus"
	assert.Equal(t, time.Minute, cfg.ReviewTimeoutDuration(time.Minute))
}
