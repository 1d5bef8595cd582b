package event

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/DioGolang/GoNearby/pkg/logger"
	"github.com/DioGolang/GoNearby/pkg/metrics"
	carrier "github.com/DioGolang/GoNearby/pkg/otel"
)

type Consumer struct {
	Conn    *amqp.Connection
	Handler MessageHandler
	Logger  logger.Logger
	Metrics metrics.Metrics
}

func NewConsumer(conn *amqp.Connection, handler MessageHandler, l logger.Logger, m metrics.Metrics) *Consumer {
	return &Consumer{
		Conn:    conn,
		Handler: handler,
		Logger:  l,
		Metrics: m,
	}
}

// Start consumes queueName until ctx is cancelled. A handler error nacks
// with requeue; success acks. The consumer never tears the process down on
// a bad message.
func (c *Consumer) Start(ctx context.Context, queueName string) error {
	ch, err := c.Conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := c.setupTopology(ch, queueName); err != nil {
		return fmt.Errorf("error when configuring topology: %w", err)
	}

	msgs, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	c.Logger.Info(ctx, "Waiting for location pings", logger.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				c.Logger.Warn(ctx, "Delivery channel closed by broker", logger.String("queue", queueName))
				return nil
			}
			c.handleDelivery(ctx, queueName, d)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, queueName string, d amqp.Delivery) {
	amqpCarrier := carrier.AMQPHeadersCarrier(d.Headers)
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, amqpCarrier)

	tracer := otel.GetTracerProvider().Tracer("location-consumer")
	msgCtx, span := tracer.Start(msgCtx, "ProcessLocationPing", trace.WithAttributes(
		attribute.String("queue.name", queueName),
		attribute.String("messaging.message_id", d.MessageId),
	))
	defer span.End()

	if err := c.Handler(msgCtx, d.Body, d.Headers); err != nil {
		c.Logger.Warn(msgCtx, "Location ping handling failed, requeueing",
			logger.String("queue", queueName),
			logger.WithError(err),
		)
		span.RecordError(err)
		c.Metrics.RecordLocationEventProcessed("requeued")
		_ = d.Nack(false, true)
		return
	}

	_ = d.Ack(false)
	c.Metrics.RecordLocationEventProcessed("ok")
}

func (c *Consumer) setupTopology(ch *amqp.Channel, queueName string) error {
	_, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}
	return nil
}
