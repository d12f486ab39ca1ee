package reorder

import (
	"reflect"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
)

// layout stacks the drag's current order in rows of height 1 starting at 0,
// which is how the terminal list draws them.
func layout(order []model.ID) []Row {
	rows := make([]Row, len(order))
	for i, id := range order {
		rows[i] = Row{ID: id, Top: float64(i), Height: 1}
	}
	return rows
}

func TestDrag_OverReflowsOrder(t *testing.T) {
	d, err := Start([]model.ID{"a", "b", "c", "d"}, "c")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Pointer on b's row (above its midpoint): c goes in front of b.
	if !d.Over(1, layout(d.Order())) {
		t.Fatal("expected order change")
	}
	if want := []model.ID{"a", "c", "b", "d"}; !reflect.DeepEqual(d.Order(), want) {
		t.Fatalf("order = %v, want %v", d.Order(), want)
	}

	// Re-evaluating at the same spot is stable.
	if d.Over(1, layout(d.Order())) {
		t.Error("expected no change on repeated hover")
	}

	// Below all items: appended last.
	d.Over(10, layout(d.Order()))
	if want := []model.ID{"a", "b", "d", "c"}; !reflect.DeepEqual(d.Order(), want) {
		t.Fatalf("order = %v, want %v", d.Order(), want)
	}

	got := d.End()
	want := []Assignment{{"a", 0}, {"b", 1}, {"d", 2}, {"c", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("End = %v, want %v", got, want)
	}
}

func TestDrag_TopOfList(t *testing.T) {
	d, _ := Start([]model.ID{"a", "b", "c"}, "c")
	d.Over(0, layout(d.Order()))
	if want := []model.ID{"c", "a", "b"}; !reflect.DeepEqual(d.Order(), want) {
		t.Errorf("order = %v, want %v", d.Order(), want)
	}
	if d.Index() != 0 {
		t.Errorf("Index = %d, want 0", d.Index())
	}
}

func TestDrag_StepAndCancel(t *testing.T) {
	d, _ := Start([]model.ID{"a", "b", "c"}, "a")
	if !d.Step(1) {
		t.Fatal("expected step down to move")
	}
	if want := []model.ID{"b", "a", "c"}; !reflect.DeepEqual(d.Order(), want) {
		t.Fatalf("order = %v, want %v", d.Order(), want)
	}
	d.Step(5)
	if d.Step(1) {
		t.Error("step past the end must be a no-op")
	}
	if want := []model.ID{"a", "b", "c"}; !reflect.DeepEqual(d.Cancel(), want) {
		t.Errorf("Cancel = %v, want %v", d.Order(), want)
	}
}

func TestStart_UnknownID(t *testing.T) {
	if _, err := Start([]model.ID{"a"}, "z"); err == nil {
		t.Fatal("expected error")
	}
}
