package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a resume file has the expected shape",
	Long:  "Validate a resume YAML file against the expected format, reporting every problem with an example of the correct shape.",
	RunE:  runValidate,
}

var validateResumePath string

func init() {
	validateCmd.Flags().StringVarP(&validateResumePath, "resume", "r", "", "Path to the resume YAML (required)")
	_ = validateCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	raw, err := storage.ReadRawFile(validateResumePath)
	if err != nil {
		return err
	}

	result, err := validation.Validate(raw)
	if err != nil {
		var valErr *validation.Error
		if errors.As(err, &valErr) {
			fmt.Println(valErr.Error())
			return fmt.Errorf("%d problem(s) found in %s", len(valErr.Violations), validateResumePath)
		}
		return err
	}

	for _, note := range result.Notes {
		fmt.Printf("note: %s\n", note)
	}
	fmt.Printf("%s looks good\n", validateResumePath)
	return nil
}
