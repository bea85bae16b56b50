package cmd

import (
	"fmt"

	"quote-service/internal/pricing"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var productFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a rate table file for structural errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadProducts(productFile)
			if err != nil {
				return err
			}
			if err := pricing.ValidateProducts(products); err != nil {
				return fmt.Errorf("invalid rate table:\n%w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d product(s) OK\n", len(products))
			return nil
		},
	}

	cmd.Flags().StringVarP(&productFile, "product", "p", "", "rate table file (JSON or YAML)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}
