package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Omar96MJ/sanad-sub001/cmd/http"
	systemcmd "github.com/Omar96MJ/sanad-sub001/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "sanad",
	Short: "Sanad mental-health telehealth platform.",
	Long: `Sanad is a telehealth backend for mental-health care.
It matches patients with therapists, manages session booking and weekly
availability, and carries the in-app messaging between the two sides.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
