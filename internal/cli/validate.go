package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wavespawn/internal/catalog"
)

// ValidateResult is the JSON payload of a successful validate.
type ValidateResult struct {
	Valid    bool            `json:"valid"`
	Enemies  int             `json:"enemies"`
	Usable   int             `json:"usable"`
	Hash     string          `json:"hash"`
	Warnings []catalog.Issue `json:"warnings"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate an enemy catalog",
		Long: `Load a CUE enemy catalog and report problems.

Load errors (bad syntax, missing fields, wrong types) fail the command.
Enemies the spawner would skip, such as a zero weight, are reported as
warnings.

Exit codes:
  0 - Catalog loads
  1 - Catalog has errors
  2 - Command error (directory not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := loadCatalog(out, dir)
	if err != nil {
		return err
	}

	hash, err := cat.Hash()
	if err != nil {
		return out.Fail(ExitFailure, catalog.ErrCodeGeneric, fmt.Sprintf("hashing catalog: %v", err), nil)
	}
	issues := cat.Validate()
	result := ValidateResult{
		Valid:    true,
		Enemies:  len(cat.Enemies),
		Usable:   len(cat.Valid()),
		Hash:     hash,
		Warnings: issues,
	}
	if result.Warnings == nil {
		result.Warnings = []catalog.Issue{}
	}

	if out.JSON() {
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	for _, issue := range issues {
		fmt.Fprintf(w, "warning: %s\n", issue)
	}
	fmt.Fprintf(w, "✓ Catalog valid (%d enemies, %d usable)\n", result.Enemies, result.Usable)
	out.VerboseLog("hash %s", hash)
	return nil
}
