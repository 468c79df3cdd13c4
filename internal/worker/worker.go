// Package worker runs the background audit consumer: submitted orders flow
// through Kafka into a structured audit log. Since the handoff is a messaging
// deep link rather than a payment API, this log is the only durable trace a
// submitted order leaves server-side.
package worker

import (
	"context"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// OrderWorker consumes checkout events and writes the order audit log.
type OrderWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewOrderWorker creates a new order audit worker
func NewOrderWorker(consumer *broker.Consumer) *OrderWorker {
	w := &OrderWorker{
		consumer: consumer,
		logger:   util.GetLogger().Named("audit"),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnCheckoutStarted(w.handleCheckoutStarted)
	eventHandler.OnOrderSubmitted(w.handleOrderSubmitted)
	w.eventHandler = eventHandler

	return w
}

func (w *OrderWorker) handleCheckoutStarted(ctx context.Context, event *models.CheckoutStartedEvent) error {
	w.logger.Info("Checkout started",
		zap.String("session_id", event.SessionID),
		zap.Int("item_count", event.ItemCount),
		zap.Int64("subtotal", event.Subtotal))
	return nil
}

func (w *OrderWorker) handleOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	w.logger.Info("Order submitted",
		zap.String("order_ref", event.OrderRef),
		zap.String("session_id", event.SessionID),
		zap.String("customer_email", event.CustomerEmail),
		zap.Int64("total", event.Total),
		zap.Int("line_count", len(event.Items)))
	return nil
}

// Start starts the worker
func (w *OrderWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting order audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *OrderWorker) Stop() error {
	w.logger.Info("Stopping order audit worker")
	return w.consumer.Close()
}
