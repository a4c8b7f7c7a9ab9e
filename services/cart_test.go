package services

import (
	"testing"

	"cafe-gandom/models"
)

var (
	espressoDouble = models.MenuItem{ID: "1", Name: "اسپرسو دوبل", NumericPrice: 70000}
	tea            = models.MenuItem{ID: "9", Name: "چای", NumericPrice: 50000}
	latte          = models.MenuItem{ID: "3", Name: "لاته", NumericPrice: 100000}
)

func TestCartAddItemIsAdditive(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		c := NewCart()
		for i := 0; i < n; i++ {
			c.AddItem(espressoDouble)
		}
		if c.Len() != 1 {
			t.Errorf("after %d adds: Len = %d, want 1", n, c.Len())
		}
		if got := c.Quantity(espressoDouble.ID); got != n {
			t.Errorf("after %d adds: Quantity = %d, want %d", n, got, n)
		}
	}
}

func TestCartKeepsFirstAddOrder(t *testing.T) {
	c := NewCart()
	c.AddItem(latte)
	c.AddItem(tea)
	c.AddItem(latte)
	c.AddItem(espressoDouble)

	items := c.Items()
	want := []string{"3", "9", "1"}
	if len(items) != len(want) {
		t.Fatalf("Items len = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("Items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name    string
		adds    int
		delta   int
		wantQty int
		wantLen int
	}{
		{"increment", 1, 2, 3, 1},
		{"decrement", 3, -1, 2, 1},
		{"down to zero removes", 2, -2, 0, 0},
		{"below zero removes", 1, -5, 0, 0},
		{"zero delta", 2, 0, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			for i := 0; i < tt.adds; i++ {
				c.AddItem(tea)
			}
			c.UpdateQuantity(tea.ID, tt.delta)
			if got := c.Quantity(tea.ID); got != tt.wantQty {
				t.Errorf("Quantity = %d, want %d", got, tt.wantQty)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestCartUpdateQuantityAfterRemovalIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(tea)
	c.AddItem(tea)
	c.AddItem(latte)

	c.UpdateQuantity(tea.ID, -2)
	c.UpdateQuantity(tea.ID, -1)
	c.UpdateQuantity(tea.ID, 3)
	c.UpdateQuantity("missing", -1)

	if c.Len() != 1 || c.Quantity(latte.ID) != 1 {
		t.Errorf("cart = %+v, want only one latte", c.Items())
	}
}

func TestCartRemoveItem(t *testing.T) {
	c := NewCart()
	c.AddItem(tea)
	c.AddItem(latte)
	c.AddItem(latte)

	c.RemoveItem(latte.ID)
	c.RemoveItem("missing")

	if c.Len() != 1 || c.Items()[0].ID != tea.ID {
		t.Errorf("cart = %+v, want only tea", c.Items())
	}
}

func TestCartTotals(t *testing.T) {
	c := NewCart()
	if c.TotalPrice() != 0 || c.TotalItemCount() != 0 {
		t.Fatalf("empty cart totals = %d/%d, want 0/0", c.TotalPrice(), c.TotalItemCount())
	}
	c.AddItem(espressoDouble)
	c.AddItem(espressoDouble)
	c.AddItem(tea)
	if got := c.TotalPrice(); got != 190000 {
		t.Errorf("TotalPrice = %d, want 190000", got)
	}
	if got := c.TotalItemCount(); got != 3 {
		t.Errorf("TotalItemCount = %d, want 3", got)
	}

	c.UpdateQuantity(espressoDouble.ID, -1)
	if got := c.TotalPrice(); got != 120000 {
		t.Errorf("TotalPrice after decrement = %d, want 120000", got)
	}
	c.RemoveItem(tea.ID)
	if got := c.TotalPrice(); got != 70000 {
		t.Errorf("TotalPrice after remove = %d, want 70000", got)
	}
}

func TestCartItemsIsACopy(t *testing.T) {
	c := NewCart()
	c.AddItem(tea)
	items := c.Items()
	items[0].Quantity = 99
	if c.Quantity(tea.ID) != 1 {
		t.Error("mutating Items() result changed the cart")
	}
}

func TestCartClear(t *testing.T) {
	c := NewCart()
	c.AddItem(tea)
	c.AddItem(latte)
	c.Clear()
	if c.Len() != 0 || c.TotalPrice() != 0 {
		t.Errorf("after Clear: %+v", c.Items())
	}
}
