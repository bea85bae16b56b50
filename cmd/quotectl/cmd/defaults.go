package cmd

import (
	"quote-service/internal/pricing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default product catalogue as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(pricing.DefaultProducts()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
