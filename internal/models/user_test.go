package models

import "testing"

func TestBlockListSetSemantics(t *testing.T) {
	var list BlockList

	list = list.Add(5)
	list = list.Add(9)
	list = list.Add(5) // duplicate, no-op
	if len(list) != 2 {
		t.Fatalf("expected 2 entries after duplicate add, got %d", len(list))
	}
	if !list.Contains(5) || !list.Contains(9) {
		t.Fatalf("expected 5 and 9 to be present, got %v", list)
	}

	list = list.Remove(5)
	if list.Contains(5) {
		t.Fatalf("5 still present after remove: %v", list)
	}
	list = list.Remove(42) // absent, no-op
	if len(list) != 1 {
		t.Fatalf("expected 1 entry after removing absent id, got %d", len(list))
	}
}

func TestBlockListValueScanRoundTrip(t *testing.T) {
	original := BlockList{3, 7, 11}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var restored BlockList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(restored) != 3 || !restored.Contains(3) || !restored.Contains(7) || !restored.Contains(11) {
		t.Fatalf("round trip lost entries: %v", restored)
	}
}

func TestBlockListScanNullAndEmpty(t *testing.T) {
	var list BlockList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list from NULL, got %v", list)
	}

	if err := list.Scan([]byte("[]")); err != nil {
		t.Fatalf("Scan empty array failed: %v", err)
	}
	if list.Contains(0) || len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestBlockListNilValueStoresEmptyArray(t *testing.T) {
	var list BlockList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value on nil list failed: %v", err)
	}
	if value != "[]" {
		t.Fatalf("expected nil list to serialize as [], got %q", value)
	}
}
