// Package cmd provides the quotectl commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quote-service/internal/pricing"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:   "quotectl",
	Short: "Price and validate insurance rate tables offline",
	Long: `quotectl works on the same rate tables the quote service stores.

Examples:
  quotectl defaults > products.yaml
  quotectl validate --product products.yaml
  quotectl quote --product products.yaml --type auto --data client.json
  quotectl seed`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newQuoteCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newDefaultsCmd())
	rootCmd.AddCommand(newSeedCmd())
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// loadProducts reads a product list, or a single product, from JSON or YAML.
func loadProducts(path string) ([]pricing.InsuranceProduct, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	unmarshal := json.Unmarshal
	if isYAML(path) {
		unmarshal = yaml.Unmarshal
	}

	var products []pricing.InsuranceProduct
	if err := unmarshal(raw, &products); err == nil {
		return products, nil
	}
	var single pricing.InsuranceProduct
	if err := unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return []pricing.InsuranceProduct{single}, nil
}

func loadData(path string) (pricing.CollectedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data := pricing.CollectedData{}
	if isYAML(path) {
		err = yaml.Unmarshal(raw, &data)
	} else {
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return data, nil
}
