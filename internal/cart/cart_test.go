package cart

import "testing"

func TestState_Derived(t *testing.T) {
	st := State{
		Lines: []Line{
			{Item: "Pizza", Price: 5000, Quantity: 2},
			{Item: "Agua", Price: 1000, Quantity: 3},
		},
		Total: 13000,
	}

	if got := st.ItemCount(); got != 5 {
		t.Errorf("ItemCount() = %d, want 5", got)
	}
	if st.Empty() {
		t.Error("Empty() = true, want false")
	}

	sum := st.Summary()
	if sum.Total != 13000 {
		t.Errorf("Summary().Total = %d, want 13000", sum.Total)
	}
	if len(sum.Lines) != 2 {
		t.Fatalf("len(Summary().Lines) = %d, want 2", len(sum.Lines))
	}
	if sum.Lines[0] != (SummaryLine{Item: "Pizza", Quantity: 2, Subtotal: 10000}) {
		t.Errorf("Summary().Lines[0] = %+v", sum.Lines[0])
	}
}

func TestState_EmptySummary(t *testing.T) {
	var st State
	if !st.Empty() || st.ItemCount() != 0 {
		t.Errorf("zero State: Empty=%v ItemCount=%d", st.Empty(), st.ItemCount())
	}
	if sum := st.Summary(); len(sum.Lines) != 0 || sum.Total != 0 {
		t.Errorf("Summary() = %+v", sum)
	}
}

func TestEncodeSnapshot(t *testing.T) {
	got, err := encodeSnapshot(Keys{}.withDefaults(), []Line{{Item: "Pizza", Price: 5000, Quantity: 2}}, 10000)
	if err != nil {
		t.Fatalf("encodeSnapshot() error = %v", err)
	}
	if want := `[{"item":"Pizza","precio":5000,"cantidad":2}]`; got["carrito"] != want {
		t.Errorf("carrito = %s, want %s", got["carrito"], want)
	}
	if got["total"] != "10000" {
		t.Errorf("total = %q, want %q", got["total"], "10000")
	}
}
