package xmltree

import "testing"

func TestDecode_SingleProductCoercedToArray(t *testing.T) {
	single := `<Root><Urunler><Urun><UrunAdi>Gitar</UrunAdi></Urun></Urunler></Root>`
	many := `<Root><Urunler>
		<Urun><UrunAdi>Gitar</UrunAdi></Urun>
		<Urun><UrunAdi>Keman</UrunAdi></Urun>
	</Urunler></Root>`

	for _, tc := range []struct {
		name string
		doc  string
		want int
	}{
		{"single", single, 1},
		{"many", many, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Decode([]byte(tc.doc), DefaultOptions())
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}

			root, ok := doc.Field("Root")
			if !ok {
				t.Fatal("Root element missing")
			}
			urunler, ok := root.Field("Urunler")
			if !ok {
				t.Fatal("Urunler element missing")
			}
			urun, ok := urunler.Field("Urun")
			if !ok {
				t.Fatal("Urun element missing")
			}
			if urun.Kind() != Array {
				t.Fatalf("Urun kind = %d, want Array", urun.Kind())
			}
			if urun.Len() != tc.want {
				t.Errorf("Urun len = %d, want %d", urun.Len(), tc.want)
			}
		})
	}
}

func TestDecode_CDATAPreserved(t *testing.T) {
	doc, err := Decode([]byte(
		`<Root><Urun><Aciklama><![CDATA[<p>En iyi &amp; gitar</p>]]></Aciklama></Urun></Root>`,
	), Options{ArrayElements: nil})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, _ := doc.Field("Root")
	urun, ok := root.Field("Urun")
	if !ok {
		t.Fatal("Urun element missing")
	}
	desc, ok := urun.Field("Aciklama")
	if !ok {
		t.Fatal("Aciklama element missing")
	}
	// CDATA content must come back verbatim, not entity-decoded twice
	want := `<p>En iyi &amp; gitar</p>`
	if desc.Text() != want {
		t.Errorf("Aciklama = %q, want %q", desc.Text(), want)
	}
}

func TestDecode_RepeatedElementsAutoCoerce(t *testing.T) {
	doc, err := Decode([]byte(
		`<Root><Liste><Kayit>a</Kayit><Kayit>b</Kayit><Kayit>c</Kayit></Liste></Root>`,
	), Options{})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, _ := doc.Field("Root")
	liste, _ := root.Field("Liste")
	kayit, ok := liste.Field("Kayit")
	if !ok {
		t.Fatal("Kayit element missing")
	}
	if kayit.Kind() != Array || kayit.Len() != 3 {
		t.Fatalf("Kayit kind=%d len=%d, want Array of 3", kayit.Kind(), kayit.Len())
	}
	if kayit.Items()[1].Text() != "b" {
		t.Errorf("Kayit[1] = %q, want b", kayit.Items()[1].Text())
	}
}

func TestDecode_AttributesBecomeFields(t *testing.T) {
	doc, err := Decode([]byte(`<Root><Urun ID="42"><UrunAdi>Flüt</UrunAdi></Urun></Root>`), Options{})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, _ := doc.Field("Root")
	urun, _ := root.Field("Urun")
	id, ok := urun.Field("ID")
	if !ok {
		t.Fatal("ID attribute missing")
	}
	if id.Text() != "42" {
		t.Errorf("ID = %q, want 42", id.Text())
	}
}

func TestDecode_AttributedScalarKeepsText(t *testing.T) {
	doc, err := Decode([]byte(
		`<Root><Urun><SatisFiyati KdvDahil="true">100,00</SatisFiyati></Urun></Root>`,
	), Options{})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, _ := doc.Field("Root")
	urun, _ := root.Field("Urun")
	fiyat, ok := urun.Field("SatisFiyati")
	if !ok {
		t.Fatal("SatisFiyati element missing")
	}
	if fiyat.Kind() != Object {
		t.Fatalf("SatisFiyati kind = %d, want Object", fiyat.Kind())
	}
	// The attribute must not swallow the element's character data.
	if fiyat.Text() != "100,00" {
		t.Errorf("SatisFiyati text = %q, want 100,00", fiyat.Text())
	}
	kdv, ok := fiyat.Field("KdvDahil")
	if !ok || kdv.Text() != "true" {
		t.Errorf("KdvDahil = %v, want true", kdv)
	}
}

func TestDecode_FieldFold(t *testing.T) {
	doc, err := Decode([]byte(`<root><urunadi>Saz</urunadi></root>`), Options{})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, ok := doc.FieldFold("Root")
	if !ok {
		t.Fatal("case-insensitive root lookup failed")
	}
	name, ok := root.FieldFold("UrunAdi")
	if !ok {
		t.Fatal("case-insensitive field lookup failed")
	}
	if name.Text() != "Saz" {
		t.Errorf("UrunAdi = %q, want Saz", name.Text())
	}
}

func TestDecode_Windows1254Fallback(t *testing.T) {
	// 0xFC is ü in windows-1254; no encoding declaration
	raw := []byte("<Root><UrunAdi>G\xfcl</UrunAdi></Root>")

	doc, err := Decode(raw, Options{})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	root, _ := doc.Field("Root")
	name, ok := root.Field("UrunAdi")
	if !ok {
		t.Fatal("UrunAdi element missing")
	}
	if name.Text() != "Gül" {
		t.Errorf("UrunAdi = %q, want Gül", name.Text())
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	if _, err := Decode([]byte("   "), Options{}); err == nil {
		t.Error("Decode expected error for empty document")
	}
}
