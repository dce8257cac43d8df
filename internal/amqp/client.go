package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"finance-ledger/config"
	"finance-ledger/internal/events"
	"finance-ledger/internal/models"
)

const (
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client публикует и читает события журнала через RabbitMQ
type Client struct {
	url          string
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	handler      events.Handler
}

var (
	_ events.Publisher = (*Client)(nil)
	_ events.Consumer  = (*Client)(nil)
)

// NewClient подключается к брокеру и объявляет exchange и очередь.
// handler нужен только потребителю, издатель передает nil.
func NewClient(cfg *config.Config, handler events.Handler) (*Client, error) {
	client := &Client{
		url:          cfg.AMQP.URL,
		exchangeName: cfg.AMQP.Exchange,
		queueName:    cfg.AMQP.Queue,
		handler:      handler,
	}

	if err := client.connect(); err != nil {
		return nil, err
	}

	log.Printf("AMQP client connected: exchange=%s, queue=%s", client.exchangeName, client.queueName)
	return client, nil
}

func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.conn, c.channel = conn, channel
	if err := c.setup(); err != nil {
		c.Close()
		return fmt.Errorf("setup exchange and queue: %w", err)
	}
	return nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Для direct exchange ключ маршрутизации совпадает с именем очереди
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish отправляет событие как persistent-сообщение
func (c *Client) Publish(ctx context.Context, event *models.LedgerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Type:         string(event.EventType),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Printf("Published %s event %s to exchange %s", event.EventType, event.EventID, c.exchangeName)
	return nil
}

// Start читает очередь до отмены контекста, переподключаясь при обрыве соединения
func (c *Client) Start(ctx context.Context) error {
	attempt := 0
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return c.Close()
		}
		if !isConnectionError(err) {
			return err
		}

		delay := exponentialBackoff(attempt)
		log.Printf("AMQP connection lost (%v), reconnecting in %s", err, delay)
		select {
		case <-ctx.Done():
			return c.Close()
		case <-time.After(delay):
		}

		c.Close()
		if err := c.connect(); err != nil {
			log.Printf("AMQP reconnect failed: %v", err)
			attempt++
			continue
		}
		attempt = 0
	}
}

func (c *Client) consume(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Printf("Started consuming ledger events from queue %s", c.queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			c.handleDelivery(delivery)
		}
	}
}

func (c *Client) handleDelivery(delivery amqp091.Delivery) {
	var event models.LedgerEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("Failed to unmarshal ledger event: %v", err)
		delivery.Nack(false, false)
		return
	}

	if err := c.handler(&event); err != nil {
		log.Printf("Failed to handle ledger event %s: %v", event.EventID, err)
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		if err != nil && err != amqp091.ErrClosed {
			return err
		}
	}
	return nil
}

// exponentialBackoff возвращает задержку перед попыткой переподключения: 1s, 2s, 4s... не более 30s
func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	delay := time.Second << attempt
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range []string{"connection refused", "connection closed", "EOF", "broken pipe", "closed network connection", "channel closed"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
