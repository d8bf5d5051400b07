// Package normalize maps schema-unknown feed nodes into canonical product
// records, tolerating missing, aliased and misencoded fields.
package normalize

import (
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"strings"

	"github.com/melodika/melodika-sync/internal/models"
	"github.com/melodika/melodika-sync/internal/xmltree"
)

// Field aliases across the provider's export variants. Lookups are
// case-insensitive; Turkish names first since they dominate.
var (
	idFields          = []string{"UrunKartiID", "UrunID", "ID", "ProductId"}
	nameFields        = []string{"UrunAdi", "Name", "Title", "Baslik"}
	descriptionFields = []string{"Aciklama", "Description", "Detay"}
	leadTextFields    = []string{"OnYazi", "KisaAciklama", "ShortDescription"}
	brandFields       = []string{"Marka", "Brand"}
	urlFields         = []string{"UrunUrl", "UrunLinki", "Url", "Link"}
	categoryFields    = []string{"Kategori", "KategoriAdi", "Category"}
	categoryTreeList  = []string{"KategoriTree", "KategoriYolu", "CategoryTree", "CategoryPath"}
	imageContainers   = []string{"Resimler", "Images", "Pictures"}
	variantContainers = []string{"UrunSecenek", "Secenekler", "Options", "Variants"}
	variantItemNames  = []string{"Secenek", "Option", "Variant"}

	priceFields        = []string{"SatisFiyati", "Fiyat", "Price"}
	discountFields     = []string{"IndirimliFiyat", "IndirimliFiyati", "DiscountedPrice"}
	stockFields        = []string{"StokAdedi", "Stok", "Stock", "Quantity"}
	currencySymFields  = []string{"ParaBirimi", "Currency"}
	currencyCodeFields = []string{"ParaBirimiKodu", "CurrencyCode"}
)

// Normalizer maps one raw product node into one canonical record. It does
// no I/O and never fails: anomalies default and are logged as warnings so a
// bad node cannot abort the batch.
type Normalizer struct {
	log *slog.Logger
}

// New creates a normalizer logging anomalies to the given logger.
func New(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{log: log}
}

// Normalize builds a canonical record from a raw feed node. The caller
// discards the result when Valid() is false.
func (n *Normalizer) Normalize(node *xmltree.Node) models.Product {
	p := models.Product{
		Name:        textOf(node, nameFields),
		Description: n.description(node),
		Brand:       textOf(node, brandFields),
		URL:         textOf(node, urlFields),
		Categories:  categoriesOf(node),
		Images:      imagesOf(node),
	}

	p.ID = textOf(node, idFields)
	if p.ID == "" {
		p.ID = fallbackID(p.Name, p.Brand, p.URL)
	}

	n.applyPricing(node, &p)

	// Defensive re-check: nothing but the three canonical codes may reach
	// persistence, whatever path assigned the field above.
	if strings.EqualFold(p.Currency, "TL") || p.Currency == "" {
		p.Currency = models.CurrencyTRY
	}

	return p
}

// description prefers the primary description field, falling back to the
// lead text. CDATA wrapping is already unwrapped by the tree decoder; HTML
// inside is passed through untouched, the storefront renders it as-is.
func (n *Normalizer) description(node *xmltree.Node) string {
	if s := textOf(node, descriptionFields); s != "" {
		return s
	}
	return textOf(node, leadTextFields)
}

// applyPricing fills price, discounted price, stock and currency from the
// first variant. Multi-variant cards exist upstream but the storefront
// sells one SKU configuration per card, so the primary variant wins; a card
// without variants becomes a priced-out placeholder rather than an error.
func (n *Normalizer) applyPricing(node *xmltree.Node, p *models.Product) {
	variant := primaryVariant(node)
	if variant == nil {
		p.Currency = models.CurrencyTRY
		return
	}

	if raw := textOf(variant, priceFields); raw != "" {
		v, err := ParseLocaleNumber(raw)
		if err != nil {
			n.log.Warn("unparsable price, defaulting to 0", "id", p.ID, "value", raw)
		}
		p.Price = v
	}

	if raw := textOf(variant, discountFields); raw != "" {
		if v, err := ParseLocaleNumber(raw); err == nil && v > 0 {
			p.DiscountedPrice = &v
		}
	}

	if raw := textOf(variant, stockFields); raw != "" {
		v, err := ParseLocaleInt(raw)
		if err != nil || v < 0 {
			v = 0
		}
		p.Stock = v
	}

	p.Currency = n.currency(variant, p.ID)
}

// currency resolves the variant's currency: the symbolic field takes
// precedence over the code field, the legacy "TL" token maps to TRY, and
// unrecognized tokens collapse to TRY with a warning.
func (n *Normalizer) currency(variant *xmltree.Node, id string) string {
	tok := textOf(variant, currencySymFields)
	if tok == "" {
		tok = textOf(variant, currencyCodeFields)
	}
	if tok == "" {
		return models.CurrencyTRY
	}
	switch strings.ToUpper(strings.TrimSpace(tok)) {
	case "TL", models.CurrencyTRY:
		return models.CurrencyTRY
	case models.CurrencyUSD:
		return models.CurrencyUSD
	case models.CurrencyEUR:
		return models.CurrencyEUR
	default:
		n.log.Warn("unrecognized currency token, defaulting to TRY", "id", id, "token", tok)
		return models.CurrencyTRY
	}
}

// primaryVariant returns the first variant node, or nil when the card has
// none. The container may hold an array directly, wrap an inner repeated
// element, or carry the price fields itself.
func primaryVariant(node *xmltree.Node) *xmltree.Node {
	for _, name := range variantContainers {
		container, ok := node.FieldFold(name)
		if !ok {
			continue
		}
		switch container.Kind() {
		case xmltree.Array:
			if container.Len() > 0 {
				return container.Items()[0]
			}
		case xmltree.Object:
			for _, inner := range variantItemNames {
				if child, ok := container.FieldFold(inner); ok {
					if child.Kind() == xmltree.Array && child.Len() > 0 {
						return child.Items()[0]
					}
					if child.Kind() == xmltree.Object {
						return child
					}
				}
			}
			return container
		}
	}
	return nil
}

// categoriesOf concatenates the singular category field with the
// slash-delimited category tree, dropping empty segments; order follows the
// document (singular first, then path segments).
func categoriesOf(node *xmltree.Node) []string {
	var out []string
	if c := textOf(node, categoryFields); c != "" {
		out = append(out, c)
	}
	if tree := textOf(node, categoryTreeList); tree != "" {
		for _, seg := range strings.Split(tree, "/") {
			if seg = strings.TrimSpace(seg); seg != "" {
				out = append(out, seg)
			}
		}
	}
	return out
}

// imagesOf flattens the nested image container, whether the provider
// surfaced it as a single value, an array, or an object of scalars.
func imagesOf(node *xmltree.Node) []string {
	for _, name := range imageContainers {
		container, ok := node.FieldFold(name)
		if !ok {
			continue
		}
		return scalarTexts(container)
	}
	return nil
}

// scalarTexts collects every non-empty scalar reachable under a node.
func scalarTexts(n *xmltree.Node) []string {
	var out []string
	switch n.Kind() {
	case xmltree.Scalar:
		if t := strings.TrimSpace(n.Text()); t != "" {
			out = append(out, t)
		}
	case xmltree.Array:
		for _, item := range n.Items() {
			out = append(out, scalarTexts(item)...)
		}
	case xmltree.Object:
		// An attributed scalar element carries its value in the character
		// data; the attributes are metadata, not collectable values.
		if t := strings.TrimSpace(n.Text()); t != "" {
			return append(out, t)
		}
		for _, key := range n.Keys() {
			if child, ok := n.Field(key); ok {
				out = append(out, scalarTexts(child)...)
			}
		}
	}
	return out
}

// textOf returns the first non-empty text among the aliased fields,
// matching names case-insensitively. Arrays yield their first scalar.
func textOf(node *xmltree.Node, aliases []string) string {
	for _, name := range aliases {
		child, ok := node.FieldFold(name)
		if !ok {
			continue
		}
		if child.Kind() == xmltree.Array && child.Len() > 0 {
			child = child.Items()[0]
		}
		if t := strings.TrimSpace(child.Text()); t != "" {
			return t
		}
	}
	return ""
}

// fallbackID derives a deterministic identity for cards the feed ships
// without one, so re-syncing updates the same record instead of duplicating
// it every run. Cards with no usable source fields stay id-less and are
// discarded by the pipeline.
func fallbackID(name, brand, url string) string {
	if name == "" && brand == "" && url == "" {
		return ""
	}
	h := fnv.New64a()
	io.WriteString(h, name)
	io.WriteString(h, "|")
	io.WriteString(h, brand)
	io.WriteString(h, "|")
	io.WriteString(h, url)
	return fmt.Sprintf("gen-%016x", h.Sum64())
}
