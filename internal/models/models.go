package models

import "time"

// Canonical currency codes after normalization. The upstream feed mixes the
// legacy "TL" token with ISO codes; only these three may reach the store.
const (
	CurrencyTRY = "TRY"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// Product is the canonical record written to the store, rebuilt from the
// feed on every sync run and overwritten via upsert-by-id.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	Stock           int      `json:"stock"`
	Brand           string   `json:"brand,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Images          []string `json:"images,omitempty"`
	Currency        string   `json:"currency"`
	URL             string   `json:"url,omitempty"`
}

// Valid reports whether the record may be persisted. Records without a
// stable identity or a name are discarded by the pipeline.
func (p *Product) Valid() bool {
	return p.ID != "" && p.Name != ""
}

// SyncReport is the structured result of one synchronization run. The
// pipeline always returns a report, never a raised error.
type SyncReport struct {
	RunID      string    `json:"run_id"`
	Success    bool      `json:"success"`
	Count      int       `json:"count"`
	Found      int       `json:"found,omitempty"`
	Failed     int       `json:"failed,omitempty"`
	Skipped    int       `json:"skipped,omitempty"`
	Source     string    `json:"source,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
