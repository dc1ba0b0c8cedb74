package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"covenant-hq/saturn/pkg/cli"
	"covenant-hq/saturn/pkg/contract/document"
	"covenant-hq/saturn/pkg/contract/loader"
	"covenant-hq/saturn/pkg/contract/validator"
)

var validateFlags struct {
	file        string
	dir         string
	maxDepth    int
	maxFileSize int64
	format      string
	print       bool
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate contract files",
	Long: `Validate contract files for include, syntax, and structural errors.

The validate command resolves each contract's !include directives and
performs comprehensive validation:
  - YAML syntax validation
  - Include resolution (cycles, depth, size, path sandboxing)
  - Root shape validation (contract root must be a mapping)
  - Structural validation (required fields, routing section shape)

Examples:
  # Validate single file
  saturn validate --file contracts/main.yaml

  # Validate directory
  saturn validate --dir contracts/

  # JSON output for CI/CD
  saturn validate --file contracts/main.yaml --format json

  # Print the fully resolved contract
  saturn validate --file contracts/main.yaml --print`,
	RunE: validateContracts,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "contract file to validate")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of contract files")
	validateCmd.Flags().IntVar(&validateFlags.maxDepth, "max-depth", loader.DefaultMaxDepth, "maximum include depth")
	validateCmd.Flags().Int64Var(&validateFlags.maxFileSize, "max-file-size", loader.DefaultMaxFileSize, "maximum contract file size in bytes")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().BoolVar(&validateFlags.print, "print", false, "print the resolved contract on success")
}

// ValidationResult represents the validation result for a single contract file.
type ValidationResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func validateContracts(cmd *cobra.Command, args []string) error {
	if validateFlags.file == "" && validateFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if validateFlags.file != "" {
		files = append(files, validateFlags.file)
	}

	if validateFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(validateFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list contract files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no contract files found")
	}

	ldr := loader.NewLoader().
		WithMaxDepth(validateFlags.maxDepth).
		WithMaxFileSize(validateFlags.maxFileSize)
	v := validator.NewValidator()

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateContractFile(ldr, v, file))
	}

	if validateFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return err
		}
		return validationStatus(results)
	}

	return outputText(results)
}

func validateContractFile(ldr *loader.Loader, v *validator.Validator, path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	contract, err := ldr.Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if err := v.Validate(contract); err != nil {
		result.Valid = false
		if issues, ok := err.(*validator.IssueList); ok {
			for _, issue := range issues.Issues {
				result.Errors = append(result.Errors, issue.Error())
			}
		} else {
			result.Errors = append(result.Errors, err.Error())
		}
		return result
	}

	if validateFlags.print {
		if data, err := document.Marshal(contract); err == nil {
			fmt.Print(string(data))
		}
	}

	return result
}

func outputText(results []ValidationResult) error {
	totalErrors := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ Includes resolved")
			fmt.Println("✓ Contract structure valid")
		}

		for _, msg := range result.Errors {
			fmt.Printf("✗ Error: %s\n", msg)
			totalErrors++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d file(s), %d error(s)\n", len(results), totalErrors)

	return validationStatus(results)
}

func validationStatus(results []ValidationResult) error {
	for _, result := range results {
		if !result.Valid {
			return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
		}
	}
	return nil
}
