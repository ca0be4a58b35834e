package orders

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if got := store.LoadAll(); len(got) != 0 {
		t.Errorf("missing file should read as empty log, got %d entries", len(got))
	}
}

func TestStoreMalformedFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(path)
	if got := store.LoadAll(); len(got) != 0 {
		t.Errorf("malformed file should read as empty log, got %d entries", len(got))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "orders.json"))
	ttl := 45
	in := []Order{{
		ID:        1,
		Code:      "P001",
		Timestamp: "2024-03-01 12:00:00",
		Customer:  "Ana",
		Items: map[string]OrderLine{
			"Pizza Muzzarella": {Quantity: 2, PerUnit: 3000, Price: 3000, LineTotal: 6000, Options: map[string]any{}},
		},
		Total:       6000,
		Status:      StatusPending,
		Driver:      "Juan",
		AssignedAt:  "2024-03-01 12:05:00",
		AssignedTTL: &ttl,
	}}
	if err := store.SaveAll(in); err != nil {
		t.Fatal(err)
	}

	out := store.LoadAll()
	if len(out) != 1 {
		t.Fatalf("got %d orders", len(out))
	}
	got := out[0]
	if got.Code != "P001" || got.Driver != "Juan" || got.Total != 6000 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.AssignedTTL == nil || *got.AssignedTTL != 45 {
		t.Errorf("assigned_ttl lost in roundtrip: %v", got.AssignedTTL)
	}
	if line := got.Items["Pizza Muzzarella"]; line.Quantity != 2 || line.LineTotal != 6000 {
		t.Errorf("line mismatch: %+v", line)
	}
}

func TestStoreLegacyBareQuantityLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	legacy := `[{"id": 1, "code": "P001", "status": "completed",
		"timestamp": "2024-01-05 18:00:00", "total": 3600,
		"items": {"Hamburguesa Simple": 2, "Gaseosa 500ml": "1"}}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	out := NewStore(path).LoadAll()
	if len(out) != 1 {
		t.Fatalf("got %d orders", len(out))
	}
	if q := out[0].Items["Hamburguesa Simple"].Quantity; q != 2 {
		t.Errorf("bare int line quantity = %d, want 2", q)
	}
	if q := out[0].Items["Gaseosa 500ml"].Quantity; q != 1 {
		t.Errorf("bare string line quantity = %d, want 1", q)
	}
	if p := out[0].Items["Hamburguesa Simple"].PerUnit; p != 0 {
		t.Errorf("legacy line has no price, got %v", p)
	}
}
