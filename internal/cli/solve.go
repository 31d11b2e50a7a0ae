package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wavespawn/internal/catalog"
	"github.com/roach88/wavespawn/internal/spawner"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Capacity int // overrides the catalog's spawner capacity when > 0
}

// SolveResult is the JSON payload of the solve command.
type SolveResult struct {
	Capacity    int          `json:"capacity"`
	TotalWeight int          `json:"total_weight"`
	TotalValue  int          `json:"total_value"`
	CatalogHash string       `json:"catalog_hash"`
	Spawns      []string     `json:"spawns"`
	Counts      []EnemyCount `json:"counts"`
}

// EnemyCount is one enemy of a solve and how often it was chosen.
type EnemyCount struct {
	Enemy string `json:"enemy"`
	Count int    `json:"count"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <catalog-dir>",
		Short: "Solve one wave and print the selection",
		Long: `Load a catalog, solve a single wave and print what would spawn.

Nothing is placed or recorded. Useful for tuning weights and values.

Example:
  wavespawn solve ./waves
  wavespawn solve ./waves --capacity 12 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "wave capacity (default: catalog spawner capacity)")

	return cmd
}

func runSolve(opts *SolveOptions, dir string, cmd *cobra.Command) error {
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
	if opts.Capacity != 0 {
		cat.Spawner.Capacity = opts.Capacity
	}
	out.VerboseLog("Loaded %d enemies from %s", len(cat.Enemies), dir)

	sp, err := spawner.New(cat)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSolve, err.Error(), nil)
	}
	wave, err := sp.Solve()
	if err != nil {
		return out.Fail(ExitFailure, ErrCodeSolve, err.Error(), nil)
	}

	result := newSolveResult(wave)
	if out.JSON() {
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, sp.Solver().String())
	for _, c := range result.Counts {
		fmt.Fprintf(w, "%s * %d\n", c.Enemy, c.Count)
	}
	return nil
}

// newSolveResult summarizes a wave. Counts follow first appearance in the
// selection.
func newSolveResult(w *spawner.Wave) SolveResult {
	result := SolveResult{
		Capacity:    w.Capacity,
		TotalWeight: w.TotalWeight,
		TotalValue:  w.TotalValue,
		CatalogHash: w.CatalogHash,
		Spawns:      make([]string, 0, len(w.Spawns)),
		Counts:      []EnemyCount{},
	}
	index := make(map[string]int)
	for _, s := range w.Spawns {
		name := s.Enemy.Name
		result.Spawns = append(result.Spawns, name)
		i, ok := index[name]
		if !ok {
			i = len(result.Counts)
			index[name] = i
			result.Counts = append(result.Counts, EnemyCount{Enemy: name})
		}
		result.Counts[i].Count++
	}
	return result
}

// loadCatalog loads a catalog directory, reporting failures through out.
// A missing directory is a command error; anything else fails validation.
func loadCatalog(out *OutputFormatter, dir string) (*catalog.Catalog, error) {
	cat, err := catalog.Load(dir)
	if err == nil {
		return cat, nil
	}
	code := catalog.ErrorCode(err)
	exit := ExitFailure
	if code == catalog.ErrCodeNotFound {
		exit = ExitCommandError
	}
	return nil, out.Fail(exit, code, err.Error(), nil)
}
