package cmd

import (
	"fmt"
	"mirro/internal/fsys"
	"mirro/internal/logger"
	"mirro/internal/mirror"
	"mirro/internal/model"
	"mirro/internal/prompt"
	"mirro/internal/repository"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mirrorDryRun    bool
	mirrorFollow    bool
	mirrorExcludes  []string
	mirrorTolerance float64
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror [source] [destination]",
	Short: "Mirror source to destination once, deleting what source does not have",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()
		fs := fsys.NewOS()

		var src, dst string
		excludes := append([]string(nil), cfg.ExcludeList...)
		excludes = append(excludes, mirrorExcludes...)
		dryRun := mirrorDryRun

		if len(args) == 2 {
			src, dst = args[0], args[1]
		} else {
			ans, err := prompt.New(os.Stdin, os.Stdout, fs).Run()
			if err != nil {
				return fmt.Errorf("prompt aborted: %w", err)
			}

			if !ans.Confirmed {
				fmt.Println("Mirror cancelled.")
				return nil
			}

			src, dst = ans.Source, ans.Destination
			excludes = append(excludes, ans.Excludes...)
			dryRun = dryRun || ans.DryRun
		}

		tolerance := mirrorTolerance
		if !cmd.Flags().Changed("time-tolerance") {
			tolerance = cfg.TimeTolerance
		}

		m, err := mirror.New(fs, src, dst, mirror.Options{
			DryRun:         dryRun,
			FollowSymlinks: mirrorFollow,
			Excludes:       excludes,
			TimeTolerance:  time.Duration(tolerance * float64(time.Second)),
		})
		if err != nil {
			return err
		}

		logger.Log.Info("starting mirror",
			zap.String("src", m.Source()),
			zap.String("dst", m.Destination()),
			zap.Bool("dry_run", dryRun))

		started := time.Now()
		sum, err := m.Run()
		if err != nil {
			return err
		}

		saveRun(m, sum, dryRun, started)
		printSummary(sum, dryRun)

		if sum.FailedCopies > 0 {
			return fmt.Errorf("%d files failed to copy", sum.FailedCopies)
		}

		return nil
	},
}

func saveRun(m *mirror.Mirrorer, sum mirror.Summary, dryRun bool, started time.Time) {
	status := model.RunStatusSuccess
	switch {
	case dryRun:
		status = model.RunStatusDryRun
	case sum.FailedCopies > 0:
		status = model.RunStatusPartial
	}

	run := &model.Run{
		SrcPath:      m.Source(),
		DstPath:      m.Destination(),
		Status:       status,
		CreatedDirs:  sum.CreatedDirs,
		CopiedFiles:  sum.CopiedFiles,
		DeletedItems: sum.DeletedItems,
		FailedCopies: sum.FailedCopies,
		DurationMs:   time.Since(started).Milliseconds(),
		StartedAt:    started,
	}

	if err := repository.NewRunRepository().Save(run); err != nil {
		logger.Log.Warn("failed to save run history",
			zap.Error(err))
	}
}

func printSummary(sum mirror.Summary, dryRun bool) {
	if dryRun {
		fmt.Println("\n[DRY RUN] Mirror would be complete!")
	} else {
		fmt.Println("\nMirror complete!")
	}

	fmt.Printf("  Directories created: %d\n", sum.CreatedDirs)
	fmt.Printf("  Files copied/updated: %d\n", sum.CopiedFiles)
	fmt.Printf("  Items deleted: %d\n", sum.DeletedItems)

	if sum.FailedCopies > 0 {
		fmt.Printf("  Files that failed to copy: %d\n", sum.FailedCopies)
	}

	if dryRun {
		fmt.Println("\nNo changes were made. Run without --dry-run to apply changes.")
	}
}

func init() {
	mirrorCmd.Flags().BoolVarP(&mirrorDryRun, "dry-run", "n", false, "Show what would be done without making changes")
	mirrorCmd.Flags().BoolVar(&mirrorFollow, "follow-symlinks", false, "Descend into symlinked directories while scanning")
	mirrorCmd.Flags().StringArrayVar(&mirrorExcludes, "exclude", nil, "Exclude paths containing this pattern (can be used multiple times)")
	mirrorCmd.Flags().Float64Var(&mirrorTolerance, "time-tolerance", 2.0, "Time difference tolerance in seconds")
	rootCmd.AddCommand(mirrorCmd)
}
