package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/melodika/melodika-sync/internal/xmltree"
)

func decode(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	n, err := xmltree.Decode([]byte(doc), xmltree.DefaultOptions())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	return n
}

func TestLocate_KnownShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{
			"root urunler urun",
			`<Root><Urunler><Urun><UrunKartiID>1</UrunKartiID></Urun><Urun><UrunKartiID>2</UrunKartiID></Urun></Urunler></Root>`,
			2,
		},
		{
			"urunler urun",
			`<Urunler><Urun><UrunKartiID>1</UrunKartiID></Urun></Urunler>`,
			1,
		},
		{
			"english products",
			`<Products><Product><ID>1</ID></Product><Product><ID>2</ID></Product><Product><ID>3</ID></Product></Products>`,
			3,
		},
		{
			"lowercase shape",
			`<root><urunler><urun><urunkartiid>1</urunkartiid></urun></urunler></root>`,
			1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := Locate(decode(t, tc.doc))
			if err != nil {
				t.Fatalf("Locate returned error: %v", err)
			}
			if len(nodes) != tc.want {
				t.Errorf("len(nodes) = %d, want %d", len(nodes), tc.want)
			}
		})
	}
}

func TestLocate_HeuristicUnknownContainer(t *testing.T) {
	// Collection under a name no known shape matches; the duck-typing
	// search must still find it because the sample looks product-like.
	doc := `<Veri><Paket>
		<Kayit><Id>1</Id><Name>Gitar</Name></Kayit>
		<Kayit><Id>2</Id><Price>10,00</Price></Kayit>
		<Kayit><Name>Keman</Name><Price>20,00</Price></Kayit>
	</Paket></Veri>`

	nodes, err := Locate(decode(t, doc))
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(nodes) != 3 {
		t.Errorf("len(nodes) = %d, want 3", len(nodes))
	}
}

func TestLocate_HeuristicMinoritySampleRejected(t *testing.T) {
	// Only one of three sampled elements is product-like: below the
	// majority threshold, so the array must not be classified.
	doc := `<Veri><Paket>
		<Kayit><Id>1</Id><Name>Gitar</Name></Kayit>
		<Kayit><Foo>x</Foo></Kayit>
		<Kayit><Bar>y</Bar></Kayit>
	</Paket></Veri>`

	_, err := Locate(decode(t, doc))
	if !errors.Is(err, ErrNoCollection) {
		t.Fatalf("Locate error = %v, want ErrNoCollection", err)
	}
}

func TestLocate_DepthBound(t *testing.T) {
	// Bury a valid collection below the depth bound; the search must give
	// up instead of descending forever.
	inner := `<Kayit><Id>1</Id><Name>Gitar</Name></Kayit><Kayit><Id>2</Id><Name>Keman</Name></Kayit>`
	doc := inner
	for _, wrap := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		doc = "<" + wrap + ">" + doc + "</" + wrap + ">"
	}

	_, err := Locate(decode(t, doc))
	if !errors.Is(err, ErrNoCollection) {
		t.Fatalf("Locate error = %v, want ErrNoCollection", err)
	}
}

func TestLocate_PrefersContainerNamedFields(t *testing.T) {
	// A decoy array sits first in document order under a non-container
	// name deeper than the real collection; the allow-list pass must find
	// the products.
	doc := `<Root>
		<Meta><Satici>melodika</Satici></Meta>
		<Items>
			<Item><Id>1</Id><Title>Gitar</Title></Item>
			<Item><Id>2</Id><Title>Keman</Title></Item>
		</Items>
	</Root>`

	nodes, err := Locate(decode(t, doc))
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}
	title, ok := nodes[0].FieldFold("Title")
	if !ok || !strings.EqualFold(title.Text(), "gitar") {
		t.Errorf("first node Title = %v, want Gitar", title)
	}
}

func TestLocate_EmptyCollection(t *testing.T) {
	_, err := Locate(decode(t, `<Root><Urunler></Urunler></Root>`))
	if !errors.Is(err, ErrNoCollection) {
		t.Fatalf("Locate error = %v, want ErrNoCollection", err)
	}
}

func TestProductLike(t *testing.T) {
	tests := []struct {
		name string
		node *xmltree.Node
		want bool
	}{
		{
			"id and name",
			xmltree.NewObject().
				Set("UrunKartiID", xmltree.NewScalar("1")).
				Set("UrunAdi", xmltree.NewScalar("Gitar")),
			true,
		},
		{
			"name and price",
			xmltree.NewObject().
				Set("Name", xmltree.NewScalar("Gitar")).
				Set("Price", xmltree.NewScalar("10")),
			true,
		},
		{
			"id only",
			xmltree.NewObject().Set("ID", xmltree.NewScalar("1")),
			false,
		},
		{
			"scalar",
			xmltree.NewScalar("Gitar"),
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := productLike(tc.node); got != tc.want {
				t.Errorf("productLike = %v, want %v", got, tc.want)
			}
		})
	}
}
