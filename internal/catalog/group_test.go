package catalog

import "testing"

func TestGroupByCategory(t *testing.T) {
	entries := []Entry{
		{Name: "Pizza", Category: "Pizzas"},
		{Name: "Coca", Category: "Bebidas"},
		{Name: "Napolitana", Category: "Pizzas"},
		{Name: "Agua", Category: "Bebidas"},
		{Name: "Flan", Category: "Postres"},
	}

	groups := GroupByCategory(entries)

	wantCats := []string{"Pizzas", "Bebidas", "Postres"}
	if len(groups) != len(wantCats) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantCats))
	}
	for i, g := range groups {
		if g.Category != wantCats[i] {
			t.Errorf("group %d category = %q, want %q", i, g.Category, wantCats[i])
		}
	}

	if groups[0].Entries[0].Name != "Pizza" || groups[0].Entries[1].Name != "Napolitana" {
		t.Errorf("Pizzas entries out of order: %+v", groups[0].Entries)
	}
	if groups[1].Entries[0].Name != "Coca" || groups[1].Entries[1].Name != "Agua" {
		t.Errorf("Bebidas entries out of order: %+v", groups[1].Entries)
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	if groups := GroupByCategory(nil); len(groups) != 0 {
		t.Errorf("GroupByCategory(nil) = %+v, want none", groups)
	}
}
