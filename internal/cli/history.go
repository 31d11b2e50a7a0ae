package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wavespawn/internal/store"
)

// DefaultHistoryLimit is how many waves history lists by default.
const DefaultHistoryLimit = 20

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// HistoryResult holds the recorded waves and per-enemy totals.
type HistoryResult struct {
	Waves  []WaveSummary      `json:"waves"`
	Totals []store.EnemyTotal `json:"totals"`
}

// WaveSummary is one recorded wave without its positions.
type WaveSummary struct {
	ID          string   `json:"id"`
	Seq         int64    `json:"seq"`
	Capacity    int      `json:"capacity"`
	TotalWeight int      `json:"total_weight"`
	TotalValue  int      `json:"total_value"`
	CatalogHash string   `json:"catalog_hash"`
	Enemies     []string `json:"enemies"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded waves",
		Long: `List the most recent waves recorded by "wavespawn run --db" and how
often each enemy has spawned overall.

Examples:
  wavespawn history --db ./waves.db
  wavespawn history --db ./waves.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", DefaultHistoryLimit, "number of waves to list")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Limit <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: --limit must be positive", ErrCodeBadFlag))
	}
	// Open would create an empty database.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	waves, err := st.ListWaves(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: failed to list waves", ErrCodeDatabase), err)
	}
	totals, err := st.EnemyTotals(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("%s: failed to total enemies", ErrCodeDatabase), err)
	}

	result := HistoryResult{
		Waves:  make([]WaveSummary, 0, len(waves)),
		Totals: totals,
	}
	if result.Totals == nil {
		result.Totals = []store.EnemyTotal{}
	}
	for _, listed := range waves {
		w, err := st.ReadWave(ctx, listed.ID)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("%s: failed to read wave %s", ErrCodeDatabase, listed.ID), err)
		}
		summary := WaveSummary{
			ID:          w.ID,
			Seq:         w.Seq,
			Capacity:    w.Capacity,
			TotalWeight: w.TotalWeight,
			TotalValue:  w.TotalValue,
			CatalogHash: w.CatalogHash,
			Enemies:     make([]string, len(w.Spawns)),
		}
		for i, s := range w.Spawns {
			summary.Enemies[i] = s.Enemy
		}
		result.Waves = append(result.Waves, summary)
	}

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return out.Success(result)
	}
	return outputHistoryText(cmd.OutOrStdout(), result, opts.Verbose)
}

func outputHistoryText(w io.Writer, result HistoryResult, verbose bool) error {
	if len(result.Waves) == 0 {
		fmt.Fprintln(w, "No waves recorded.")
		return nil
	}

	fmt.Fprintln(w, "=== Waves ===")
	for _, wave := range result.Waves {
		fmt.Fprintf(w, "  [%d] %s value=%d weight=%d/%d\n",
			wave.Seq, truncateID(wave.ID), wave.TotalValue, wave.TotalWeight, wave.Capacity)
		if len(wave.Enemies) > 0 {
			fmt.Fprintf(w, "       %s\n", strings.Join(wave.Enemies, " "))
		}
		if verbose {
			fmt.Fprintf(w, "       Catalog: %s\n", truncateID(wave.CatalogHash))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Totals ===")
	for _, t := range result.Totals {
		fmt.Fprintf(w, "  %s: %d spawned in %d waves (value %d)\n", t.Enemy, t.Count, t.Waves, t.Value)
	}
	return nil
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
