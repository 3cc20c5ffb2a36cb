package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hashtag-analyzer/src/render"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Queue       string // analysis requests are consumed from here
	RenderQueue string // render requests are published here
}

// Validate reports the first unusable setting.
func (c RabbitMQConfig) Validate() error {
	switch {
	case c.Host == "":
		return errors.New("rabbitmq: empty host")
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("rabbitmq: invalid port %d", c.Port)
	case c.Queue == "":
		return errors.New("rabbitmq: empty queue name")
	case c.RenderQueue == "":
		return errors.New("rabbitmq: empty render queue name")
	}
	return nil
}

// URL returns the AMQP connection URL.
func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.Username, c.Password, c.Host, c.Port)
}

// RabbitMQ consumes analysis requests and publishes render requests.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  RabbitMQConfig
}

// NewRabbitMQ connects to the broker, retrying with backoff, and declares
// both queues.
func NewRabbitMQ(ctx context.Context, config RabbitMQConfig) (*RabbitMQ, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	err := retryWithBackoff(ctx, "rabbitmq dial", func() error {
		var err error
		conn, err = amqp.Dial(config.URL())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, name := range []string{config.Queue, config.RenderQueue} {
		_, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	// Set QoS for fair dispatch
	err = ch.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &RabbitMQ{
		conn:    conn,
		channel: ch,
		config:  config,
	}, nil
}

// Consume starts delivering analysis requests. Messages must be acked.
func (r *RabbitMQ) Consume(ctx context.Context) (<-chan amqp.Delivery, error) {
	msgs, err := r.channel.ConsumeWithContext(
		ctx,
		r.config.Queue, // queue
		"",             // consumer
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register a consumer: %w", err)
	}
	return msgs, nil
}

// PublishRender sends a render request as JSON to the render queue.
func (r *RabbitMQ) PublishRender(ctx context.Context, req render.RenderRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode render request: %w", err)
	}
	return retryWithBackoff(ctx, "rabbitmq publish", func() error {
		return r.channel.PublishWithContext(ctx,
			"",                   // exchange
			r.config.RenderQueue, // routing key
			false,                // mandatory
			false,                // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			})
	})
}

// Close closes the RabbitMQ connection
func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
