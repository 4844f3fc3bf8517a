package cmd

import (
	"fmt"
	"mirro/internal/model"
	"mirro/internal/repository"
	"time"

	"github.com/spf13/cobra"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent mirror runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewRunRepository()

		runs, err := repo.GetRecent(historyN)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no runs yet")
			return nil
		}

		for _, run := range runs {
			mark := "✓"
			if run.Status == model.RunStatusPartial {
				mark = "✗"
			}

			fmt.Printf("%s [%s] %-8s %s -> %s  (+%dd +%df -%d !%d, %s)\n",
				mark,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.Status,
				run.SrcPath,
				run.DstPath,
				run.CreatedDirs,
				run.CopiedFiles,
				run.DeletedItems,
				run.FailedCopies,
				(time.Duration(run.DurationMs) * time.Millisecond).String(),
			)
		}

		stats, err := repo.GetStats()
		if err != nil {
			return err
		}

		fmt.Printf("\n%d runs total, %d clean, %d partial\n", stats.Total, stats.Clean, stats.Partial)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
