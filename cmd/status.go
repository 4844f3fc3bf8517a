package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"mirro/internal/daemon"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View watch daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var snap daemon.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		lastRun := "-"
		if snap.LastRun != nil {
			lastRun = snap.LastRun.Format("2006-01-02 15:04:05")
		}

		uptime := time.Since(snap.StartedAt).Round(time.Second)

		fmt.Printf("mirroring %s -> %s\n", snap.Src, snap.Dst)
		fmt.Printf("  uptime:    %s\n", uptime)
		fmt.Printf("  passes:    %d (%d partial)\n", snap.Runs, snap.PartialRuns)
		fmt.Printf("  last pass: %s\n", lastRun)
		fmt.Printf("  last counters: %d dirs created, %d copied, %d deleted, %d failed\n",
			snap.CreatedDirs, snap.CopiedFiles, snap.DeletedItems, snap.FailedCopies)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
