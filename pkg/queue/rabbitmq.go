package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"feed-planner/pkg/config"
	"feed-planner/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	FeedEventQueueName = "feed_event_queue"
	FeedEventExchange  = "feeds"

	RoutingKeyFeedSaved   = "feed_saved"
	RoutingKeyFeedCreated = "feed_created"
)

// FeedEvent announces a change to a stored feed blob so external consumers
// (webhooks, cache warmers) can react without polling.
type FeedEvent struct {
	FeedID    string    `json:"feed_id"`
	PostCount int       `json:"post_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		FeedEventExchange, // name
		"direct",          // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		FeedEventQueueName, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range []string{RoutingKeyFeedSaved, RoutingKeyFeedCreated} {
		if err := channel.QueueBind(FeedEventQueueName, key, FeedEventExchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

// PublishFeedEvent is best-effort: a broker failure is logged and returned but
// must never block or fail the save path that triggered it.
func (c *Client) PublishFeedEvent(routingKey string, event FeedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	err = c.channel.Publish(
		FeedEventExchange, // exchange
		routingKey,        // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		c.logger.Error("Failed to publish feed event %s for %s: %v", routingKey, event.FeedID, err)
		return fmt.Errorf("failed to publish feed event: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
