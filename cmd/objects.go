package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"object-gateway/core/gateway"
	"object-gateway/core/storage"
	"object-gateway/feature/files"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	uploadPath  string
	uploadName  string
	uploadTags  []string
	downloadVer string
	downloadOut string
)

// objectsCmd groups object commands
var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Manage objects in a tenant bucket",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var objectsListCmd = &cobra.Command{
	Use:   "list <bucket>",
	Short: "List every object version in a bucket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		objects, err := a.files.ListObjects(cmd.Context(), tenantFlag, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, objects)
	},
}

var objectsUploadCmd = &cobra.Command{
	Use:   "upload <bucket> <file>",
	Short: "Upload a local file, creating the bucket when needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := files.ParseTags(uploadTags)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}
		name := uploadName
		if name == "" {
			name = filepath.Base(args[1])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		in := gateway.UploadInput{
			Bucket:      args[0],
			Path:        uploadPath,
			ObjectName:  name,
			Content:     content,
			ContentType: mime.TypeByExtension(filepath.Ext(name)),
			Tags:        tags,
		}
		if err := a.files.Upload(cmd.Context(), tenantFlag, in); err != nil {
			return err
		}
		a.logger.Info("Object uploaded",
			zap.String("bucket", args[0]),
			zap.String("key", in.Key()),
			zap.Int("size", len(content)),
		)
		return nil
	},
}

var objectsDownloadCmd = &cobra.Command{
	Use:   "download <bucket> <name>",
	Short: "Download an object, optionally a specific version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		data, err := a.files.Download(cmd.Context(), tenantFlag, args[0], args[1], downloadVer)
		if err != nil {
			return err
		}
		if downloadOut == "" || downloadOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(downloadOut, data, 0o644)
	},
}

var objectsPresignCmd = &cobra.Command{
	Use:   "presign <bucket> <name>",
	Short: "Issue a time-limited download URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		url, err := a.files.PresignedURL(cmd.Context(), tenantFlag, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]any{
			"url":       url,
			"expiresIn": int(storage.PresignExpiry.Seconds()),
		})
	},
}

var objectsDeleteCmd = &cobra.Command{
	Use:   "delete <bucket> <name>...",
	Short: "Delete one or more objects",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		bucket, names := args[0], args[1:]
		if len(names) == 1 {
			err = a.files.DeleteObject(cmd.Context(), tenantFlag, bucket, names[0])
		} else {
			err = a.files.DeleteObjects(cmd.Context(), tenantFlag, bucket, names)
		}
		if err != nil {
			return err
		}
		a.logger.Info("Objects deleted", zap.String("bucket", bucket), zap.Int("count", len(names)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(objectsCmd)
	objectsCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "tenant id")
	_ = objectsCmd.MarkPersistentFlagRequired("tenant")

	objectsUploadCmd.Flags().StringVar(&uploadPath, "path", "", "key prefix joined with '/'")
	objectsUploadCmd.Flags().StringVar(&uploadName, "name", "", "object name (defaults to the file name)")
	objectsUploadCmd.Flags().StringArrayVar(&uploadTags, "tag", nil, "tag as key:value, repeatable")
	objectsDownloadCmd.Flags().StringVar(&downloadVer, "version", "", "version id")
	objectsDownloadCmd.Flags().StringVarP(&downloadOut, "output", "o", "", "output file (stdout when empty)")

	objectsCmd.AddCommand(objectsListCmd, objectsUploadCmd, objectsDownloadCmd, objectsPresignCmd, objectsDeleteCmd)
}
