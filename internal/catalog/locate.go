// Package catalog locates the repeated product collection inside a decoded
// feed document without assuming a fixed schema location.
package catalog

import (
	"errors"
	"strings"

	"github.com/melodika/melodika-sync/internal/xmltree"
)

// ErrNoCollection is returned when neither the known shapes nor the
// heuristic search find any product nodes. Fatal for a sync run.
var ErrNoCollection = errors.New("no product collection found in feed document")

// maxSearchDepth bounds the heuristic descent. The known export variants
// nest the collection at most three levels deep; five leaves headroom while
// guaranteeing termination on pathological documents.
const maxSearchDepth = 5

// knownShapes are root→collection→item paths observed across the provider's
// export variants, tried in order before falling back to the heuristic.
var knownShapes = [][]string{
	{"Root", "Urunler", "Urun"},
	{"Root", "Urunler", "UrunKarti"},
	{"Urunler", "Urun"},
	{"Urunler", "UrunKarti"},
	{"UrunListesi", "Urun"},
	{"Root", "Products", "Product"},
	{"Products", "Product"},
	{"Catalog", "Products", "Product"},
	{"Rss", "Channel", "Item"},
}

// containerNames is the allow-list of field names that look like product
// collection containers; the heuristic descends into these first.
var containerNames = []string{
	"urunler", "urun", "urunkarti", "urunlistesi",
	"products", "product", "items", "item", "catalog", "katalog", "liste",
}

// Aliases for the duck-typing predicate, lowercase. A node exhibiting at
// least two of identity/name/price is considered product-like.
var (
	idAliases    = []string{"urunkartiid", "id", "urunid", "productid", "stokkodu", "sku", "kod"}
	nameAliases  = []string{"urunadi", "name", "title", "baslik", "productname", "ad"}
	priceAliases = []string{"satisfiyati", "fiyat", "price", "indirimlifiyat", "sellingprice", "tutar"}
)

// Locate returns the ordered product nodes of a decoded feed document.
func Locate(doc *xmltree.Node) ([]*xmltree.Node, error) {
	for _, shape := range knownShapes {
		if nodes, ok := probeShape(doc, shape); ok {
			return nodes, nil
		}
	}
	if nodes, ok := search(doc, 0); ok {
		return nodes, nil
	}
	return nil, ErrNoCollection
}

// probeShape follows one known path from the document root. The final
// segment may be an array of product nodes or, for degenerate documents the
// array coercion did not catch, a single product-like object.
func probeShape(doc *xmltree.Node, shape []string) ([]*xmltree.Node, bool) {
	n := doc
	for _, name := range shape {
		child, ok := n.FieldFold(name)
		if !ok {
			return nil, false
		}
		n = child
	}
	switch n.Kind() {
	case xmltree.Array:
		if n.Len() > 0 {
			return n.Items(), true
		}
	case xmltree.Object:
		if productLike(n) {
			return []*xmltree.Node{n}, true
		}
	}
	return nil, false
}

// search walks the tree depth-first looking for an array classified as a
// product collection, preferring container-named fields at each level.
func search(n *xmltree.Node, depth int) ([]*xmltree.Node, bool) {
	if depth > maxSearchDepth {
		return nil, false
	}

	switch n.Kind() {
	case xmltree.Array:
		if isProductCollection(n) {
			return n.Items(), true
		}
		for _, item := range n.Items() {
			if nodes, ok := search(item, depth+1); ok {
				return nodes, true
			}
		}
	case xmltree.Object:
		for _, key := range n.Keys() {
			if !looksLikeContainer(key) {
				continue
			}
			if child, ok := n.Field(key); ok {
				if nodes, ok := search(child, depth+1); ok {
					return nodes, true
				}
			}
		}
		for _, key := range n.Keys() {
			if looksLikeContainer(key) {
				continue
			}
			if child, ok := n.Field(key); ok {
				if nodes, ok := search(child, depth+1); ok {
					return nodes, true
				}
			}
		}
	}
	return nil, false
}

// isProductCollection samples the first three elements; at least half of the
// sample must look product-like.
func isProductCollection(arr *xmltree.Node) bool {
	items := arr.Items()
	if len(items) == 0 {
		return false
	}
	sample := items
	if len(sample) > 3 {
		sample = sample[:3]
	}
	hits := 0
	for _, item := range sample {
		if productLike(item) {
			hits++
		}
	}
	return hits*2 >= len(sample)
}

// productLike reports whether an object node exhibits at least two of:
// an identity-like, a name-like and a price-like field.
func productLike(n *xmltree.Node) bool {
	if n.Kind() != xmltree.Object {
		return false
	}
	score := 0
	if hasAnyField(n, idAliases) {
		score++
	}
	if hasAnyField(n, nameAliases) {
		score++
	}
	if hasAnyField(n, priceAliases) {
		score++
	}
	return score >= 2
}

func hasAnyField(n *xmltree.Node, aliases []string) bool {
	for _, key := range n.Keys() {
		lower := strings.ToLower(key)
		for _, alias := range aliases {
			if lower == alias {
				return true
			}
		}
	}
	return false
}

func looksLikeContainer(key string) bool {
	lower := strings.ToLower(key)
	for _, name := range containerNames {
		if lower == name {
			return true
		}
	}
	return false
}
