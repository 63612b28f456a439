package cmd

import (
	"object-gateway/core/storage"
	"object-gateway/feature/files"

	"github.com/spf13/cobra"
)

var (
	findTags []string
	findMode string
)

// tagsCmd groups tag query commands
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Query objects by tag",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var tagsFindCmd = &cobra.Command{
	Use:   "find <bucket>",
	Short: "Find object versions whose tags match",
	Long: `Lists every version in the bucket and fetches each version's tags.
With --mode and, every key:value pair must match; with --mode or, any
requested value matching any tag value is enough.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := storage.ParseMatchMode(findMode)
		if err != nil {
			return err
		}
		tags, err := files.ParseTags(findTags)
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		found, err := a.files.FindByTags(cmd.Context(), tenantFlag, args[0], tags, mode)
		if err != nil {
			return err
		}
		return printJSON(cmd, found)
	},
}

func init() {
	RootCmd.AddCommand(tagsCmd)
	tagsCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "tenant id")
	_ = tagsCmd.MarkPersistentFlagRequired("tenant")

	tagsFindCmd.Flags().StringArrayVar(&findTags, "tag", nil, "tag as key:value, repeatable")
	tagsFindCmd.Flags().StringVar(&findMode, "mode", "and", "match mode: and|or")
	tagsCmd.AddCommand(tagsFindCmd)
}
