package cmd

import (
	"fmt"
	"mirro/internal/autostart"
	"os"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <source> <destination>",
	Short: "Register the watch daemon to start on login",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		as := autostart.New()
		if err := as.Install(execPath, args); err != nil {
			return err
		}

		fmt.Println("mirro daemon registered for autostart")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
