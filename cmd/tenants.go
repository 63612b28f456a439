package cmd

import (
	"github.com/spf13/cobra"
)

// tenantsCmd lists the tenants the configured source knows about
var tenantsCmd = &cobra.Command{
	Use:   "tenants",
	Short: "List configured tenants and their backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		entries, err := a.tenants.List(cmd.Context())
		if err != nil {
			return err
		}

		type row struct {
			Tenant    string `json:"tenant"`
			Backend   string `json:"backend"`
			URL       string `json:"url"`
			Namespace string `json:"namespace,omitempty"`
			Region    string `json:"region,omitempty"`
		}
		rows := make([]row, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, row{
				Tenant:    e.Tenant,
				Backend:   string(e.Backend),
				URL:       e.URL,
				Namespace: e.Namespace,
				Region:    e.Region,
			})
		}
		return printJSON(cmd, rows)
	},
}

func init() {
	RootCmd.AddCommand(tenantsCmd)
}
