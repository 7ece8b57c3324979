package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chattally/pkg/config"
	"github.com/ccollicutt/chattally/pkg/scanner"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a chattally configuration file without scanning.

Checks:
  - YAML syntax
  - Required fields
  - Webhook URLs and triggers
  - Duplicate search terms (warning only)
  - Chat file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Chat files:   %d pattern(s)\n", len(cfg.ChatFiles))
	fmt.Fprintf(w, "  Search terms: %d\n", len(cfg.SearchTerms))
	fmt.Fprintf(w, "  Webhooks:     %d\n", len(cfg.Webhooks))

	fmt.Fprintf(w, "\nSearch terms:\n")
	for i, term := range cfg.SearchTerms {
		fmt.Fprintf(w, "  %d. %q\n", i+1, term)
	}

	if dups := config.DuplicateTerms(cfg.SearchTerms); len(dups) > 0 {
		fmt.Fprintf(w, "\nWarning: duplicate search terms are tallied once per copy: %q\n", dups)
	}

	files, err := scanner.ResolveSources(cfg.ChatFiles)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Error expanding chat file patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(w, "\nChat files:\n")
	for _, f := range files {
		status := "ok"
		if _, err := os.Stat(f); err != nil {
			status = "not found"
		}
		fmt.Fprintf(w, "  - %s (%s)\n", f, status)
	}

	return nil
}
