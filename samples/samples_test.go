// ABOUTME: Tests for the built-in sample catalog.
// ABOUTME: Verifies lookup semantics and that every entry is well-formed.
package samples

import "testing"

func TestCatalogEntriesWellFormed(t *testing.T) {
	all := Catalog()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}
	seen := make(map[string]bool)
	for _, s := range all {
		if s.Name == "" || s.Description == "" || s.Code == "" {
			t.Errorf("sample %q has empty fields", s.Name)
		}
		if seen[s.Name] {
			t.Errorf("duplicate sample name %q", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestFind(t *testing.T) {
	s, ok := Find("merge-sort")
	if !ok {
		t.Fatal("merge-sort not found")
	}
	if s.Name != "merge-sort" {
		t.Errorf("Name = %q, want merge-sort", s.Name)
	}

	if _, ok := Find("MERGE-SORT"); !ok {
		t.Error("lookup should be case-insensitive")
	}

	if _, ok := Find("no-such-sample"); ok {
		t.Error("expected miss for unknown name")
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	b := Catalog()
	if b[0].Name == "mutated" {
		t.Error("Catalog must return an independent copy")
	}
}

func TestNamesMatchCatalog(t *testing.T) {
	names := Names()
	all := Catalog()
	if len(names) != len(all) {
		t.Fatalf("Names len = %d, Catalog len = %d", len(names), len(all))
	}
	for i := range names {
		if names[i] != all[i].Name {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], all[i].Name)
		}
	}
}
