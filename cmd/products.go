package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Read canonical product records from the store",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored products",
	RunE:  runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one product by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

func init() {
	productsListCmd.Flags().Int("limit", 50, "Maximum number of products (0 for all)")
	productsListCmd.Flags().String("format", "json", "Output format: json, table")
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	products, err := st.FindMany(context.Background(), limit)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		printProductsTable(products)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}
	return nil
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	product, err := st.FindUnique(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(product)
}
