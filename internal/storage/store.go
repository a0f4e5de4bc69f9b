// Package storage persists job descriptions and tailored resumes as YAML
// files under a per-job directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	jobFileName    = "job.yaml"
	resumeFileName = "resume.yaml"
)

// Store reads and writes pipeline artifacts under a root data directory.
// Each job gets its own subdirectory named by the derived job identifier.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the store's data directory.
func (s *Store) Root() string {
	return s.root
}

// JobDir returns the directory for a job identifier, creating it if needed.
func (s *Store) JobDir(jobID string) (string, error) {
	if jobID == "" {
		return "", fmt.Errorf("job identifier must not be empty")
	}
	dir := filepath.Join(s.root, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create job directory %s: %w", dir, err)
	}
	return dir, nil
}

// WriteJobDescription persists a parsed job description under the job's
// directory and returns the file path.
func (s *Store) WriteJobDescription(jobID string, jd *types.JobDescription) (string, error) {
	dir, err := s.JobDir(jobID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, jobFileName)
	if err := writeYAML(path, jd); err != nil {
		return "", err
	}
	return path, nil
}

// ReadJobDescription loads a previously persisted job description.
func (s *Store) ReadJobDescription(jobID string) (*types.JobDescription, error) {
	path := filepath.Join(s.root, jobID, jobFileName)
	var jd types.JobDescription
	if err := readYAML(path, &jd); err != nil {
		return nil, err
	}
	return &jd, nil
}

// WriteTailoredResume persists the tailored resume for a job and returns the
// file path.
func (s *Store) WriteTailoredResume(jobID string, resume *types.ResumeDocument) (string, error) {
	dir, err := s.JobDir(jobID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, resumeFileName)
	if err := writeYAML(path, resume); err != nil {
		return "", err
	}
	return path, nil
}

// ReadTailoredResume loads the tailored resume written for a job.
func (s *Store) ReadTailoredResume(jobID string) (*types.ResumeDocument, error) {
	path := filepath.Join(s.root, jobID, resumeFileName)
	var resume types.ResumeDocument
	if err := readYAML(path, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// TailoredResumePath returns where the tailored resume for a job lives,
// whether or not it exists yet.
func (s *Store) TailoredResumePath(jobID string) string {
	return filepath.Join(s.root, jobID, resumeFileName)
}

// ReadResumeFile loads any resume YAML file from an arbitrary path, such as
// the user's source resume outside the data directory.
func ReadResumeFile(path string) (*types.ResumeDocument, error) {
	var resume types.ResumeDocument
	if err := readYAML(path, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// ReadRawFile returns the bytes of a file, for callers that validate shape
// before decoding into typed structs.
func ReadRawFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
