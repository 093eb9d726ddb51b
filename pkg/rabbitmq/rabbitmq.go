package rabbitmq

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// DefaultQueue is used when Config.Queue is empty.
const DefaultQueue = "product_events"

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// Event is the envelope written to the queue for every published payload.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent wraps payload in an Event with a fresh id.
func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errors.Wrapf(err, "failed to marshal %s payload", eventType)
	}
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	log     *zerolog.Logger
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable event queue.
func NewClient(cfg Config, log *zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open channel")
	}

	c, err := newClient(ch, cfg.Queue, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	c.conn = conn

	c.log.Info().Str("queue", c.queue).Msg("RabbitMQ client connected")
	return c, nil
}

func newClient(ch channel, queue string, log *zerolog.Logger) (*Client, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, errors.Wrapf(err, "failed to declare %s", queue)
	}
	return &Client{channel: ch, queue: queue, log: log}, nil
}

// Queue returns the name of the event queue.
func (c *Client) Queue() string {
	return c.queue
}

// Publish sends payload as a persistent JSON event of the given type.
func (c *Client) Publish(eventType string, payload any) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish("", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}

	c.log.Debug().Str("event", eventType).Str("id", event.ID).Msg("event published")
	return nil
}

// Consume delivers every message of the event queue to handler in a
// background goroutine. Messages are acked on success. A failed message is
// requeued once and dropped if it fails again.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "failed to register consumer")
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to process message")
				if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
					c.log.Error().Err(nackErr).Msg("failed to nack message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error().Err(ackErr).Msg("failed to ack message")
			}
		}
	}()
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = errors.Wrap(err, "failed to close channel")
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to close connection")
		}
	}
	return firstErr
}

// DecodeEvent parses a delivery body into an Event.
func DecodeEvent(msg amqp.Delivery) (Event, error) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return Event{}, errors.Wrap(err, "malformed event")
	}
	return event, nil
}
