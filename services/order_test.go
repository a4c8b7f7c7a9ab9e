package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"cafe-gandom/kv"
	"cafe-gandom/models"
)

// countingKV wraps a kv.Store and can be told to fail.
type countingKV struct {
	kv.Store
	sets    int
	failSet error
	failGet error
}

func (c *countingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if c.failGet != nil {
		return "", false, c.failGet
	}
	return c.Store.Get(ctx, key)
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	if c.failSet != nil {
		return c.failSet
	}
	c.sets++
	return c.Store.Set(ctx, key, value)
}

type recordingNotifier struct {
	events []models.OrderEvent
}

func (r *recordingNotifier) Notify(_ context.Context, ev models.OrderEvent, _ models.Order) {
	r.events = append(r.events, ev)
}

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("ORD%03d", n), nil
	}
}

var fixedNow = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...OrderStoreOption) (*OrderStore, *countingKV) {
	t.Helper()
	store := &countingKV{Store: kv.NewMemory()}
	opts = append([]OrderStoreOption{
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	s := NewOrderStore(store, "", opts...)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, store
}

func TestSubmitCart(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	earlier, err := s.Submit(ctx, []models.CartItem{{MenuItem: latte, Quantity: 1}})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	cart := NewCart()
	cart.AddItem(espressoDouble)
	cart.AddItem(espressoDouble)
	cart.AddItem(tea)

	id, err := s.SubmitCart(ctx, cart)
	if err != nil {
		t.Fatalf("SubmitCart: %v", err)
	}
	if cart.Len() != 0 {
		t.Errorf("cart not cleared: %+v", cart.Items())
	}

	orders := s.Orders()
	if len(orders) != 2 {
		t.Fatalf("len(Orders) = %d, want 2", len(orders))
	}
	if orders[0].ID != id || orders[1].ID != earlier {
		t.Errorf("order ids = [%s %s], want newest first [%s %s]", orders[0].ID, orders[1].ID, id, earlier)
	}
	got := orders[0]
	if got.TotalPrice != 190000 {
		t.Errorf("TotalPrice = %d, want 190000", got.TotalPrice)
	}
	if got.Status != models.OrderStatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.Timestamp != fixedNow.UnixMilli() {
		t.Errorf("Timestamp = %d, want %d", got.Timestamp, fixedNow.UnixMilli())
	}
	if len(got.Items) != 2 || got.Items[0].Quantity != 2 || got.Items[1].Quantity != 1 {
		t.Errorf("Items = %+v", got.Items)
	}
}

func TestSubmitSnapshotsItems(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	items := []models.CartItem{{MenuItem: tea, Quantity: 2}}
	id, err := s.Submit(ctx, items)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	items[0].Quantity = 50
	items[0].NumericPrice = 1

	o, _ := s.Get(id)
	if o.Items[0].Quantity != 2 || o.TotalPrice != 100000 {
		t.Errorf("order changed with caller slice: %+v", o)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	s, store := newTestStore(t)
	if _, err := s.SubmitCart(context.Background(), NewCart()); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
	if store.sets != 0 || s.Len() != 0 {
		t.Errorf("empty submit wrote %d times, Len = %d", store.sets, s.Len())
	}
}

func TestSubmitWriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	s, store := newTestStore(t)

	cart := NewCart()
	cart.AddItem(tea)
	store.failSet = errors.New("disk full")

	if _, err := s.SubmitCart(ctx, cart); err == nil {
		t.Fatal("SubmitCart should fail when the medium fails")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after failed write, want 0", s.Len())
	}
	if cart.Len() != 1 {
		t.Error("cart cleared although the order was not stored")
	}
}

func TestCompleteAndDeleteUnknownID(t *testing.T) {
	ctx := context.Background()
	s, store := newTestStore(t)
	if _, err := s.Submit(ctx, []models.CartItem{{MenuItem: tea, Quantity: 1}}); err != nil {
		t.Fatal(err)
	}
	before := s.Orders()
	writes := store.sets

	if err := s.Complete(ctx, "NOPE00"); err != nil {
		t.Errorf("Complete unknown: %v", err)
	}
	if err := s.Delete(ctx, "NOPE00", Answered(true)); err != nil {
		t.Errorf("Delete unknown: %v", err)
	}
	if !reflect.DeepEqual(before, s.Orders()) {
		t.Errorf("orders changed: %+v -> %+v", before, s.Orders())
	}
	if store.sets != writes {
		t.Errorf("unknown id caused %d writes", store.sets-writes)
	}
}

func TestCompleteRemovesOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	a, _ := s.Submit(ctx, []models.CartItem{{MenuItem: tea, Quantity: 1}})
	b, _ := s.Submit(ctx, []models.CartItem{{MenuItem: latte, Quantity: 1}})

	if err := s.Complete(ctx, a); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	orders := s.Orders()
	if len(orders) != 1 || orders[0].ID != b {
		t.Errorf("Orders = %+v, want only %s", orders, b)
	}
	if _, ok := s.Get(a); ok {
		t.Errorf("completed order %s is still retained", a)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	s, store := newTestStore(t, WithDeletePrompt("sure?"))
	id, _ := s.Submit(ctx, []models.CartItem{{MenuItem: tea, Quantity: 1}})
	writes := store.sets

	var asked string
	declined := ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		asked = prompt
		return false, nil
	})
	if err := s.Delete(ctx, id, declined); err != nil {
		t.Fatalf("Delete declined: %v", err)
	}
	if asked != "sure?" {
		t.Errorf("prompt = %q, want sure?", asked)
	}
	if s.Len() != 1 || store.sets != writes {
		t.Errorf("declined delete mutated the store: len %d, writes %d", s.Len(), store.sets-writes)
	}

	if err := s.Delete(ctx, id, nil); err != nil {
		t.Fatalf("Delete without confirmer: %v", err)
	}
	if s.Len() != 1 || store.sets != writes {
		t.Errorf("delete without confirmation mutated the store: len %d, writes %d", s.Len(), store.sets-writes)
	}

	failing := ConfirmFunc(func(context.Context, string) (bool, error) { return false, errors.New("prompt closed") })
	if err := s.Delete(ctx, id, failing); err == nil {
		t.Error("Delete should return the confirmer error")
	}
	if s.Len() != 1 {
		t.Error("failed prompt mutated the store")
	}

	if err := s.Delete(ctx, id, Answered(true)); err != nil {
		t.Fatalf("Delete confirmed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after confirmed delete, want 0", s.Len())
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()
	s := NewOrderStore(medium, "orders", WithIDGenerator(sequentialIDs()))
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	cart := NewCart()
	cart.AddItem(espressoDouble)
	cart.AddItem(tea)
	cart.AddItem(tea)
	if _, err := s.SubmitCart(ctx, cart); err != nil {
		t.Fatal(err)
	}
	cart.AddItem(latte)
	if _, err := s.SubmitCart(ctx, cart); err != nil {
		t.Fatal(err)
	}

	restarted := NewOrderStore(medium, "orders")
	if err := restarted.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(s.Orders(), restarted.Orders()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", restarted.Orders(), s.Orders())
	}
}

func TestLoadFallsBackToEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
	}{
		{"absent", nil},
		{"empty string", strPtr("")},
		{"not json", strPtr("{{oops")},
		{"wrong shape", strPtr(`{"id":"X"}`)},
		{"null", strPtr("null")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			medium := kv.NewMemory()
			if tt.raw != nil {
				_ = medium.Set(ctx, DefaultOrdersKey, *tt.raw)
			}
			s := NewOrderStore(medium, "")
			if err := s.Load(ctx); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if s.Orders() == nil || s.Len() != 0 {
				t.Errorf("Orders = %#v, want empty non-nil", s.Orders())
			}
		})
	}
}

func TestLoadReadsOriginalFormat(t *testing.T) {
	ctx := context.Background()
	medium := kv.NewMemory()
	raw := `[{"id":"K3F9QZ","items":[{"id":"1","name":"اسپرسو دوبل","price":"۷۰,۰۰۰ تومان","numericPrice":70000,"quantity":2}],"totalPrice":140000,"timestamp":1718000000000,"status":"pending"}]`
	_ = medium.Set(ctx, DefaultOrdersKey, raw)

	s := NewOrderStore(medium, "")
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	o, ok := s.Get("K3F9QZ")
	if !ok {
		t.Fatal("order K3F9QZ not loaded")
	}
	if o.TotalPrice != 140000 || o.Items[0].NumericPrice != 70000 || o.Items[0].Quantity != 2 || o.Timestamp != 1718000000000 {
		t.Errorf("loaded order = %+v", o)
	}
}

func TestLoadMediumFailure(t *testing.T) {
	store := &countingKV{Store: kv.NewMemory(), failGet: errors.New("connection refused")}
	s := NewOrderStore(store, "")
	if err := s.Load(context.Background()); err == nil {
		t.Error("Load should report a failing medium")
	}
}

func TestNotifierEvents(t *testing.T) {
	ctx := context.Background()
	rec := &recordingNotifier{}
	s, _ := newTestStore(t, WithNotifier(rec), WithNotifier(nil))

	a, _ := s.Submit(ctx, []models.CartItem{{MenuItem: tea, Quantity: 2}})
	b, _ := s.Submit(ctx, []models.CartItem{{MenuItem: latte, Quantity: 1}})
	_ = s.Complete(ctx, a)
	_ = s.Delete(ctx, b, Answered(false))
	_ = s.Delete(ctx, b, Answered(true))
	_ = s.Complete(ctx, "NOPE00")

	want := []string{models.EventOrderSubmitted, models.EventOrderSubmitted, models.EventOrderCompleted, models.EventOrderDeleted}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %+v, want types %v", rec.events, want)
	}
	for i, typ := range want {
		if rec.events[i].Type != typ {
			t.Errorf("events[%d].Type = %q, want %q", i, rec.events[i].Type, typ)
		}
	}
	if rec.events[0].TotalPrice != 100000 || len(rec.events[0].Items) != 1 {
		t.Errorf("submitted event = %+v", rec.events[0])
	}
	if rec.events[2].OrderID != a || rec.events[3].OrderID != b {
		t.Errorf("event ids = %s, %s", rec.events[2].OrderID, rec.events[3].OrderID)
	}
}

func strPtr(s string) *string { return &s }
