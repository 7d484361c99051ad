package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/schemas"
	rootschemas "github.com/jonathan/party-optimizer/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long: "Validates a catalog file or recommendations export. Pass --schema for a schema on disk, " +
		"or --kind to use one of the built-in schemas (friends, foods, recommendations).",
	RunE: runValidate,
}

var (
	validateJSONPath   string
	validateSchemaPath string
	validateKind       string
)

var builtinSchemas = map[string]string{
	"friends":         rootschemas.Friends,
	"foods":           rootschemas.Foods,
	"recommendations": rootschemas.Recommendations,
}

func init() {
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Path to the JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON Schema file")
	validateCmd.Flags().StringVar(&validateKind, "kind", "", "Built-in schema: friends, foods or recommendations")
	_ = validateCmd.MarkFlagRequired("json")
	validateCmd.MarkFlagsMutuallyExclusive("schema", "kind")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	switch {
	case validateSchemaPath != "":
		err = schemas.ValidateJSON(validateSchemaPath, validateJSONPath)
	case validateKind != "":
		schema, ok := builtinSchemas[strings.ToLower(validateKind)]
		if !ok {
			return fmt.Errorf("unknown schema kind %q", validateKind)
		}
		content, readErr := os.ReadFile(validateJSONPath)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", validateJSONPath, readErr)
		}
		err = schemas.ValidateJSONString(schema, string(content))
	default:
		return fmt.Errorf("one of --schema or --kind is required")
	}

	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %s\n", validateJSONPath)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validateJSONPath)
	return nil
}
