// Package mq publishes order queue events to a RabbitMQ topic exchange.
package mq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to url, enables publisher confirms and declares exchange as a durable topic.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

// Publish sends body and waits for the broker's ack or nack of this delivery.
// Each publish holds its own confirmation, so a confirm that arrives after ctx
// expired is never read by a later publish.
func (c *Client) Publish(ctx context.Context, exchange, key string, body []byte, persistent bool) error {
	mode := amqp.Transient
	if persistent {
		mode = amqp.Persistent
	}
	confirm, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: mode,
		ContentType:  "application/json",
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return err
	}
	if confirm == nil {
		return errors.New("channel is not in confirm mode")
	}
	ack, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ack {
		return fmt.Errorf("publish NACK from broker (delivery tag %d)", confirm.DeliveryTag)
	}
	return nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
