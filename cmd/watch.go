package cmd

import (
	"context"
	"mirro/internal/daemon"
	"mirro/internal/fsys"
	"mirro/internal/logger"
	"mirro/internal/mirror"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	watchFollow    bool
	watchExcludes  []string
	watchTolerance float64
	watchDebounce  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <source> <destination>",
	Short: "Keep destination mirrored, re-running after source changes settle",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	excludes := append([]string(nil), cfg.ExcludeList...)
	excludes = append(excludes, watchExcludes...)

	tolerance := watchTolerance
	if !cmd.Flags().Changed("time-tolerance") {
		tolerance = cfg.TimeTolerance
	}

	m, err := mirror.New(fsys.NewOS(), args[0], args[1], mirror.Options{
		FollowSymlinks: watchFollow,
		Excludes:       excludes,
		TimeTolerance:  time.Duration(tolerance * float64(time.Second)),
	})
	if err != nil {
		return err
	}

	state := daemon.NewState(m.Source(), m.Destination())

	runOnce := func() {
		started := time.Now()
		sum, err := m.Run()
		if err != nil {
			logger.Log.Error("mirror pass failed",
				zap.Error(err))
			return
		}

		state.RecordRun(sum)
		saveRun(m, sum, false, started)

		logger.Log.Info("mirror pass complete",
			zap.Int("created_dirs", sum.CreatedDirs),
			zap.Int("copied", sum.CopiedFiles),
			zap.Int("deleted", sum.DeletedItems),
			zap.Int("failed", sum.FailedCopies))
	}

	runOnce()

	w, err := daemon.NewWatcher(watchDebounce, excludes)
	if err != nil {
		return err
	}

	if err := w.Watch(m.Source()); err != nil {
		return err
	}

	go func() {
		for range w.Triggers() {
			runOnce()
		}
	}()

	srv := daemon.NewServer(state, cfg.DaemonPort)
	srv.Start()

	logger.Log.Info("mirro daemon started",
		zap.String("src", m.Source()),
		zap.String("dst", m.Destination()),
		zap.Int("port", cfg.DaemonPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-srv.StopCh():
		logger.Log.Info("stop requested via API")
	}

	w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func init() {
	watchCmd.Flags().BoolVar(&watchFollow, "follow-symlinks", false, "Descend into symlinked directories while scanning")
	watchCmd.Flags().StringArrayVar(&watchExcludes, "exclude", nil, "Exclude paths containing this pattern (can be used multiple times)")
	watchCmd.Flags().Float64Var(&watchTolerance, "time-tolerance", 2.0, "Time difference tolerance in seconds")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "How long source events must settle before re-mirroring")
	rootCmd.AddCommand(watchCmd)
}
