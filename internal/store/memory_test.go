package store

import (
	"context"
	"errors"
	"testing"

	"github.com/melodika/melodika-sync/internal/models"
)

func sample(id, name string) *models.Product {
	return &models.Product{
		ID:         id,
		Name:       name,
		Price:      199.90,
		Stock:      3,
		Currency:   models.CurrencyTRY,
		Categories: []string{"Gitar"},
		Images:     []string{"https://cdn.example.com/" + id + ".jpg"},
	}
}

func TestMemory_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Upsert(ctx, sample("1", "Gitar")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := m.FindUnique(ctx, "1")
	if err != nil {
		t.Fatalf("FindUnique: %v", err)
	}
	if got.Name != "Gitar" || got.Price != 199.90 {
		t.Errorf("stored record = %+v", got)
	}

	// Second upsert with the same id replaces, never duplicates.
	updated := sample("1", "Klasik Gitar")
	updated.Stock = 7
	if err := m.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
	got, _ = m.FindUnique(ctx, "1")
	if got.Name != "Klasik Gitar" || got.Stock != 7 {
		t.Errorf("record after second upsert = %+v", got)
	}
}

func TestMemory_CreateConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Create(ctx, sample("1", "Gitar")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Create(ctx, sample("1", "Keman")); !errors.Is(err, ErrExists) {
		t.Errorf("Create duplicate error = %v, want ErrExists", err)
	}
}

func TestMemory_UpdateMissing(t *testing.T) {
	m := NewMemory()
	if err := m.Update(context.Background(), sample("yok", "Yok")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing error = %v, want ErrNotFound", err)
	}
}

func TestMemory_FindUniqueMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.FindUnique(context.Background(), "yok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindUnique missing error = %v, want ErrNotFound", err)
	}
}

func TestMemory_FindManyOrderedAndLimited(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, p := range []*models.Product{
		sample("1", "Keman"),
		sample("2", "Akustik Gitar"),
		sample("3", "Zurna"),
	} {
		if err := m.Upsert(ctx, p); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	all, err := m.FindMany(ctx, 0)
	if err != nil {
		t.Fatalf("FindMany: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Akustik Gitar" || all[2].Name != "Zurna" {
		t.Errorf("FindMany order = %v", names(all))
	}

	limited, err := m.FindMany(ctx, 2)
	if err != nil {
		t.Fatalf("FindMany: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestMemory_ClonesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := sample("1", "Gitar")
	if err := m.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	in.Images[0] = "mutated"

	got, _ := m.FindUnique(ctx, "1")
	if got.Images[0] == "mutated" {
		t.Error("store shares the caller's image slice")
	}

	got.Categories[0] = "mutated"
	again, _ := m.FindUnique(ctx, "1")
	if again.Categories[0] == "mutated" {
		t.Error("store returns its internal category slice")
	}
}

func TestOpen_MemorySelector(t *testing.T) {
	for _, dsn := range []string{"", "memory"} {
		st, err := Open(dsn)
		if err != nil {
			t.Fatalf("Open(%q): %v", dsn, err)
		}
		if _, ok := st.(*Memory); !ok {
			t.Errorf("Open(%q) = %T, want *Memory", dsn, st)
		}
		st.Close()
	}
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
