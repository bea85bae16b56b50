package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"quote-service/internal/pricing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newQuoteCmd() *cobra.Command {
	var (
		productFile   string
		dataFile      string
		insuranceType string
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price collected client data against a rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := loadProducts(productFile)
			if err != nil {
				return err
			}
			product, err := pickProduct(products, insuranceType)
			if err != nil {
				return err
			}
			data := pricing.CollectedData{}
			if dataFile != "" {
				if data, err = loadData(dataFile); err != nil {
					return err
				}
			}

			quote := pricing.Calculate(product, data)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(quote)
			}
			return printQuote(cmd.OutOrStdout(), product, quote)
		},
	}

	cmd.Flags().StringVarP(&productFile, "product", "p", "", "rate table file (JSON or YAML)")
	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "collected client data file (JSON or YAML)")
	cmd.Flags().StringVarP(&insuranceType, "type", "t", "", "product type to price (default: first product in the file)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the quote as JSON")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func pickProduct(products []pricing.InsuranceProduct, insuranceType string) (pricing.InsuranceProduct, error) {
	if len(products) == 0 {
		return pricing.InsuranceProduct{}, fmt.Errorf("no product in file")
	}
	if insuranceType == "" {
		return products[0], nil
	}
	for _, p := range products {
		if p.Type == insuranceType {
			return p, nil
		}
	}
	return pricing.InsuranceProduct{}, fmt.Errorf("product type %q not found", insuranceType)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func printQuote(out io.Writer, product pricing.InsuranceProduct, quote pricing.Quote) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s (%s)\n", product.DisplayName, product.Type)
	fmt.Fprintf(w, "Base price\t\t%s\n", money(quote.BasePrice))
	for _, adj := range quote.Adjustments {
		fmt.Fprintf(w, "%s\t%s\t%s\n", adj.Name, adj.Percentage, adj.Description)
	}
	fmt.Fprintf(w, "Total\t\t%s\n", money(quote.TotalPrice))
	for _, d := range quote.Diagnostics {
		fmt.Fprintf(w, "warning\t%s\t%s\n", d.Reason, d.Message)
	}
	return w.Flush()
}
