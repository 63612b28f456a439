package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bucketsCmd groups bucket lifecycle commands
var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Manage buckets for a tenant",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var bucketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's buckets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		buckets, err := a.files.ListBuckets(cmd.Context(), tenantFlag)
		if err != nil {
			return err
		}
		return printJSON(cmd, buckets)
	},
}

var bucketsExistsCmd = &cobra.Command{
	Use:   "exists <bucket>",
	Short: "Report whether a bucket exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		exists, err := a.files.BucketExists(cmd.Context(), tenantFlag, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{"bucket": args[0], "exists": exists})
	},
}

var bucketsCreateCmd = &cobra.Command{
	Use:   "create <bucket>",
	Short: "Create a bucket if it does not exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.files.CreateBucket(cmd.Context(), tenantFlag, args[0]); err != nil {
			return err
		}
		a.logger.Info("Bucket ready", zap.String("tenant", tenantFlag), zap.String("bucket", args[0]))
		return nil
	},
}

var bucketsDeleteCmd = &cobra.Command{
	Use:   "delete <bucket>",
	Short: "Delete a bucket if it exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.files.DeleteBucket(cmd.Context(), tenantFlag, args[0]); err != nil {
			return err
		}
		a.logger.Info("Bucket removed", zap.String("tenant", tenantFlag), zap.String("bucket", args[0]))
		return nil
	},
}

var bucketsVersioningCmd = &cobra.Command{
	Use:   "versioning <bucket> <true|false>",
	Short: "Enable or suspend bucket versioning",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("versioning flag %q: %w", args[1], err)
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.files.SetVersioning(cmd.Context(), tenantFlag, args[0], enabled); err != nil {
			return err
		}
		a.logger.Info("Versioning updated",
			zap.String("tenant", tenantFlag),
			zap.String("bucket", args[0]),
			zap.Bool("enabled", enabled),
		)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bucketsCmd)
	bucketsCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "tenant id")
	_ = bucketsCmd.MarkPersistentFlagRequired("tenant")
	bucketsCmd.AddCommand(bucketsListCmd, bucketsExistsCmd, bucketsCreateCmd, bucketsDeleteCmd, bucketsVersioningCmd)
}
