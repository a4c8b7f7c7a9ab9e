package mq

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"cafe-gandom/models"
)

const (
	publishTimeout = 5 * time.Second
	queueSize      = 64
)

type publishFunc func(ctx context.Context, exchange, key string, body []byte, persistent bool) error

// Publisher sends every order event to the exchange with the event type as routing key.
// Notify only queues the event; a single worker publishes in order. When the
// queue is full the event is dropped and logged, so the caller never waits on the broker.
type Publisher struct {
	exchange string
	publish  publishFunc
	queue    chan models.OrderEvent
	done     chan struct{}
	once     sync.Once
}

func NewPublisher(c *Client, exchange string) *Publisher {
	return newPublisher(c.Publish, exchange, queueSize)
}

func newPublisher(publish publishFunc, exchange string, size int) *Publisher {
	p := &Publisher{
		exchange: exchange,
		publish:  publish,
		queue:    make(chan models.OrderEvent, size),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)
	for ev := range p.queue {
		p.send(ev)
	}
}

func (p *Publisher) send(ev models.OrderEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: marshal %s: %v", ev.Type, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.publish(ctx, p.exchange, ev.Type, body, true); err != nil {
		log.Printf("mq: publish %s for order %s: %v", ev.Type, ev.OrderID, err)
	}
}

// Notify implements services.OrderNotifier.
func (p *Publisher) Notify(_ context.Context, ev models.OrderEvent, _ models.Order) {
	select {
	case p.queue <- ev:
	default:
		log.Printf("mq: queue full, dropping %s for order %s", ev.Type, ev.OrderID)
	}
}

// Close stops accepting events and waits for the queued ones to be published.
// Notify must not be called after Close.
func (p *Publisher) Close() {
	p.once.Do(func() { close(p.queue) })
	<-p.done
}
