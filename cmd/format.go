package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/melodika/melodika-sync/internal/models"
)

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(products []models.Product) {
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, " %d. %s\n", i+1, p.Name)

		priceLine := "    Price: " + formatPrice(p.Price, p.Currency)
		if p.DiscountedPrice != nil {
			priceLine = "    Price: " + formatPrice(*p.DiscountedPrice, p.Currency) +
				fmt.Sprintf("  (was %s)", formatPrice(p.Price, p.Currency))
		}
		priceLine += fmt.Sprintf("  |  Stock: %d", p.Stock)
		if p.Brand != "" {
			priceLine += "  |  " + p.Brand
		}
		fmt.Fprintln(os.Stdout, priceLine)

		if len(p.Categories) > 0 {
			fmt.Fprintf(os.Stdout, "    Category: %s\n", strings.Join(p.Categories, " > "))
		}
		fmt.Fprintf(os.Stdout, "    id=%s", p.ID)
		if p.URL != "" {
			fmt.Fprintf(os.Stdout, "  %s", p.URL)
		}
		fmt.Fprintln(os.Stdout)
	}
}

// formatPrice formats an amount with its currency, e.g. "1.234,56 TRY".
func formatPrice(amount float64, currency string) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	return strings.Join(parts, ".") + "," + frac + " " + currency
}
