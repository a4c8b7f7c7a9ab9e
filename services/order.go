package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cafe-gandom/kv"
	"cafe-gandom/models"
)

const DefaultOrdersKey = "cafe_gandom_orders"

var ErrEmptyCart = errors.New("cart is empty")

// Confirmer answers the yes/no prompt shown before an order is deleted.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Answered is a Confirmer whose answer is already known, e.g. from an inline Yes/No button.
func Answered(yes bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) { return yes, nil })
}

// OrderNotifier is told about queue changes after they are persisted.
type OrderNotifier interface {
	Notify(ctx context.Context, ev models.OrderEvent, order models.Order)
}

type OrderStoreOption func(*OrderStore)

func WithClock(now func() time.Time) OrderStoreOption {
	return func(s *OrderStore) { s.now = now }
}

func WithIDGenerator(gen func() (string, error)) OrderStoreOption {
	return func(s *OrderStore) { s.newID = gen }
}

func WithNotifier(n OrderNotifier) OrderStoreOption {
	return func(s *OrderStore) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithDeletePrompt sets the text handed to the Confirmer before a delete.
func WithDeletePrompt(prompt string) OrderStoreOption {
	return func(s *OrderStore) { s.deletePrompt = prompt }
}

// OrderStore is the persisted, newest-first order queue. The whole queue is
// written to a single kv slot on every mutation; memory is only updated after
// the write succeeds.
type OrderStore struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	orders []models.Order

	now          func() time.Time
	newID        func() (string, error)
	notifiers    []OrderNotifier
	deletePrompt string
}

func NewOrderStore(store kv.Store, key string, opts ...OrderStoreOption) *OrderStore {
	if key == "" {
		key = DefaultOrdersKey
	}
	s := &OrderStore{
		kv:           store,
		key:          key,
		orders:       []models.Order{},
		now:          time.Now,
		newID:        GenerateOrderID,
		deletePrompt: "Delete this order?",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the queue from the medium. A missing or malformed slot yields an
// empty queue; only a failing medium is returned as an error.
func (s *OrderStore) Load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	orders := []models.Order{}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &orders); err != nil {
			log.Printf("orders slot %q is malformed, starting empty: %v", s.key, err)
			orders = []models.Order{}
		}
		if orders == nil {
			orders = []models.Order{}
		}
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	log.Printf("loaded %d orders from %q", len(orders), s.key)
	return nil
}

// persist writes next to the medium and, on success, makes it the current queue.
// Caller holds s.mu.
func (s *OrderStore) persist(ctx context.Context, next []models.Order) error {
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	s.orders = next
	return nil
}

// Submit snapshots items into a pending order at the head of the queue and returns its id.
func (s *OrderStore) Submit(ctx context.Context, items []models.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	id, err := s.newID()
	if err != nil {
		return "", err
	}

	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)
	var total int64
	for _, it := range snapshot {
		total += it.LineTotal()
	}
	order := models.Order{
		ID:         id,
		Items:      snapshot,
		TotalPrice: total,
		Timestamp:  s.now().UnixMilli(),
		Status:     models.OrderStatusPending,
	}

	s.mu.Lock()
	next := make([]models.Order, 0, len(s.orders)+1)
	next = append(next, order)
	next = append(next, s.orders...)
	err = s.persist(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	log.Printf("order %s submitted: %d items, total %d", order.ID, len(order.Items), order.TotalPrice)
	s.notify(ctx, models.EventOrderSubmitted, order)
	return order.ID, nil
}

// SubmitCart submits the cart's current lines and empties the cart on success.
func (s *OrderStore) SubmitCart(ctx context.Context, cart *Cart) (string, error) {
	id, err := s.Submit(ctx, cart.Items())
	if err != nil {
		return "", err
	}
	cart.Clear()
	return id, nil
}

// Complete takes the order off the queue. Completed orders are not retained.
func (s *OrderStore) Complete(ctx context.Context, id string) error {
	removed, ok, err := s.remove(ctx, id)
	if err != nil || !ok {
		return err
	}
	log.Printf("order %s completed", id)
	s.notify(ctx, models.EventOrderCompleted, removed)
	return nil
}

// Delete removes the order once confirm agrees. A declined prompt, or no
// Confirmer at all, changes nothing.
func (s *OrderStore) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil {
		log.Printf("order %s delete ignored: no confirmation", id)
		return nil
	}
	yes, err := confirm.Confirm(ctx, s.deletePrompt)
	if err != nil {
		return fmt.Errorf("confirm delete %s: %w", id, err)
	}
	if !yes {
		log.Printf("order %s delete declined", id)
		return nil
	}
	removed, ok, err := s.remove(ctx, id)
	if err != nil || !ok {
		return err
	}
	log.Printf("order %s deleted", id)
	s.notify(ctx, models.EventOrderDeleted, removed)
	return nil
}

// remove drops id and persists. Unknown ids are a no-op without a write.
func (s *OrderStore) remove(ctx context.Context, id string) (models.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, false, nil
	}
	removed := s.orders[idx]
	next := make([]models.Order, 0, len(s.orders)-1)
	next = append(next, s.orders[:idx]...)
	next = append(next, s.orders[idx+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return models.Order{}, false, err
	}
	return removed, true, nil
}

// Orders returns the queue, newest first.
func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *OrderStore) Get(id string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderStore) notify(ctx context.Context, eventType string, order models.Order) {
	if len(s.notifiers) == 0 {
		return
	}
	ev := models.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Timestamp: s.now().UnixMilli(),
	}
	if eventType == models.EventOrderSubmitted {
		ev.Items = order.Items
		ev.TotalPrice = order.TotalPrice
	}
	for _, n := range s.notifiers {
		n.Notify(ctx, ev, order)
	}
}
