package cmd

import (
	"fmt"
	"os"

	"object-gateway/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "object-gateway",
	Short: "Tenant-scoped object storage gateway",
	Long: `Object Gateway unifies S3-compatible, AWS S3 and REST object stores behind
one API: bucket lifecycle, versioned uploads and downloads, tag queries,
presigned URLs and batch deletes, isolated per tenant.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI errors use the console encoder with ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding .env and config.yaml")
}
