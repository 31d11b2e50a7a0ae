package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/wavespawn/internal/observability"
	"github.com/roach88/wavespawn/internal/spawner"
	"github.com/roach88/wavespawn/internal/store"
)

// DefaultTick is how often the run loop advances the spawner.
const DefaultTick = 100 * time.Millisecond

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database    string
	Capacity    int
	Interval    time.Duration
	Seed        uint64
	Cycles      int
	Tick        time.Duration
	Jitter      bool
	MetricsAddr string

	// IDGenerator allows overriding the wave ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator spawner.IDGenerator

	// Ticker allows overriding the frame ticker (for testing).
	// If nil, a time.Ticker firing every Tick is used.
	Ticker spawner.Ticker
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <catalog-dir>",
		Short: "Start the spawn loop",
		Long: `Start spawning waves from a CUE enemy catalog.

A wave is spawned immediately, then every spawner interval. With --db each
wave is appended to a SQLite history (created if it doesn't exist) and
sequence numbers continue from the last recorded wave. Runs until
interrupted or until --cycles waves have spawned.

Example:
  wavespawn run ./waves
  wavespawn run ./waves --db ./waves.db --interval 2s --cycles 10
  wavespawn run ./waves --metrics-addr :9090 --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpawner(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite wave history (optional)")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "wave capacity (default: catalog spawner capacity)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "time between waves (default: catalog spawner interval)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "placement seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&opts.Cycles, "cycles", 0, "stop after this many waves (0 runs until interrupted)")
	cmd.Flags().DurationVar(&opts.Tick, "tick", DefaultTick, "frame interval of the spawn loop")
	cmd.Flags().BoolVar(&opts.Jitter, "jitter", false, "solve each wave at a random capacity between half and full")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runSpawner(opts *RunOptions, dir string, cmd *cobra.Command) error {
	setupLogging(os.Stderr, opts.Verbose)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	if opts.Cycles < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: --cycles must not be negative", ErrCodeBadFlag))
	}
	if opts.Ticker == nil && opts.Tick <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: --tick must be positive", ErrCodeBadFlag))
	}

	slog.Info("loading catalog", "dir", dir)
	out := &OutputFormatter{Format: "text", Writer: cmd.ErrOrStderr()}
	cat, err := loadCatalog(out, dir)
	if err != nil {
		return err
	}
	if opts.Capacity != 0 {
		cat.Spawner.Capacity = opts.Capacity
	}
	if opts.Interval != 0 {
		cat.Spawner.Interval = opts.Interval
	}
	slog.Info("catalog loaded", "enemies", len(cat.Enemies), "usable", len(cat.Valid()))

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	ids := opts.IDGenerator
	if ids == nil {
		ids = spawner.UUIDv7Generator{}
	}
	spawnOpts := []spawner.Option{
		spawner.WithSeed(seed),
		spawner.WithIDGenerator(ids),
		spawner.WithMaxCycles(opts.Cycles),
		spawner.WithObserver(observability.SpawnerMetrics{}),
	}
	if opts.Jitter {
		spawnOpts = append(spawnOpts, spawner.WithCapacityJitter())
	}

	rec := &printingRecorder{w: cmd.OutOrStdout()}
	if opts.Database != "" {
		slog.Info("opening database", "path", opts.Database)
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		last, err := st.LatestSeq(parentCtx)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to read wave history", err)
		}
		slog.Info("database ready", "last_seq", last)
		spawnOpts = append(spawnOpts, spawner.WithClock(spawner.NewClockAt(last)))
		rec.next = st
	}
	spawnOpts = append(spawnOpts, spawner.WithRecorder(rec))

	sp, err := spawner.New(cat, spawnOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create spawner", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	metricsDone := make(chan error, 1)
	if opts.MetricsAddr != "" {
		ln, err := net.Listen("tcp", opts.MetricsAddr)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to listen for metrics", err)
		}
		go func() {
			metricsDone <- observability.Serve(ctx, ln)
		}()
	} else {
		metricsDone <- nil
	}

	ticker := opts.Ticker
	if ticker == nil {
		ticker = spawner.NewTicker(opts.Tick)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Spawner started (capacity %d, every %s). Press Ctrl-C to stop.\n",
		cat.Spawner.Capacity, max(cat.Spawner.Interval, spawner.MinInterval))

	runErr := sp.Run(ctx, ticker)
	cancel()
	if err := <-metricsDone; err != nil {
		slog.Error("metrics server error", "error", err)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return WrapExitError(ExitFailure, "spawner error", runErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Spawner stopped after %d waves.\n", rec.waves)
	slog.Info("spawner stopped gracefully")
	return nil
}

// printingRecorder prints each wave and forwards it to the store, if any.
type printingRecorder struct {
	w     io.Writer
	next  spawner.Recorder
	waves int
}

func (r *printingRecorder) WriteWave(ctx context.Context, w store.Wave) error {
	if r.next != nil {
		if err := r.next.WriteWave(ctx, w); err != nil {
			return err
		}
	}
	r.waves++
	fmt.Fprintf(r.w, "wave %d [%s] value=%d weight=%d/%d:", w.Seq, truncateID(w.ID), w.TotalValue, w.TotalWeight, w.Capacity)
	for _, s := range w.Spawns {
		fmt.Fprintf(r.w, " %s", s.Enemy)
	}
	fmt.Fprintln(r.w)
	return nil
}
