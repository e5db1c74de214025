package supply

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"

	"stock/entities"
	"stock/pkg/log"
)

// Consumer is the supply service's side of the protocol: it receives
// supply requests, grants the full requested amount on top of the
// reported quantity, and publishes a correlated reply to the queue the
// request named.
type Consumer struct {
	publisher message.Publisher
	metrics   *Metrics
}

func NewConsumer(publisher message.Publisher, metrics *Metrics) *Consumer {
	if publisher == nil {
		panic("missing publisher")
	}
	if metrics == nil {
		panic("missing metrics")
	}
	return &Consumer{
		publisher: publisher,
		metrics:   metrics,
	}
}

// Handle adapts the outcome to the router's ack semantics: Processed and
// Rejected acknowledge the delivery, Retry would return the error.
func (c *Consumer) Handle(msg *message.Message) error {
	outcome, err := c.process(msg)
	if outcome == Retry {
		return err
	}
	if err != nil {
		log.FromContext(msg.Context()).WithError(err).Error("Dropping supply request")
	}
	return nil
}

func (c *Consumer) process(msg *message.Message) (Outcome, error) {
	c.metrics.RequestReceived()

	var request entities.SupplyRequest
	if err := json.Unmarshal(msg.Payload, &request); err != nil {
		c.metrics.RequestFailed()
		return Rejected, fmt.Errorf("could not decode supply request: %w", err)
	}
	if err := request.Validate(); err != nil {
		c.metrics.RequestFailed()
		return Rejected, err
	}

	// Additive replenishment: always grant the full requested amount.
	reply := entities.SupplyReply{
		ItemID:        request.ItemID,
		NewQuantity:   request.CurrentQuantity + request.RequestedQuantity,
		CorrelationID: request.CorrelationID,
	}

	log.FromContext(msg.Context()).WithFields(logrus.Fields{
		"item_id":            request.ItemID,
		"current_quantity":   request.CurrentQuantity,
		"requested_quantity": request.RequestedQuantity,
		"new_quantity":       reply.NewQuantity,
		"correlation_id":     request.CorrelationID,
	}).Info("Processing supply request")

	payload, err := json.Marshal(reply)
	if err != nil {
		c.metrics.RequestFailed()
		return Rejected, fmt.Errorf("could not marshal supply reply: %w", err)
	}

	out := message.NewMessage(watermill.NewUUID(), payload)
	out.Metadata.Set(log.CorrelationIDMetadataKey, request.CorrelationID)
	out.SetContext(msg.Context())

	// The reply goes wherever the request said, no allow-list.
	if err := c.publisher.Publish(request.ReplyTo, out); err != nil {
		c.metrics.RequestFailed()
		return Rejected, fmt.Errorf("could not publish supply reply to %q: %w", request.ReplyTo, err)
	}

	c.metrics.RequestSucceeded()
	return Processed, nil
}
