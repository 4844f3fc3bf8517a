package cmd

import (
	"fmt"
	"mirro/internal/config"
	"mirro/internal/db"
	"mirro/internal/logger"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	debug bool
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "mirro",
	Short: "One-way directory mirroring, rsync --archive --delete style",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger.Init(debug, quiet)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		clientCmds := map[string]bool{
			"status": true, "stop": true,
			"install": true, "uninstall": true,
		}
		if !clientCmds[cmd.Name()] {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", cfg.DaemonPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
}
