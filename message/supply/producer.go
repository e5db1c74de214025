package supply

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stock/entities"
	"stock/pkg/log"
)

// Producer publishes supply requests when the inventory runs short.
// Fire-and-forget: no reply is awaited, the reconciler picks replies up
// independently on the reply queue.
type Producer struct {
	publisher    message.Publisher
	requestTopic string
	replyTopic   string

	// pending is optional; when set, every sent request is tracked for
	// later reply validation.
	pending *PendingTracker
}

func NewProducer(publisher message.Publisher, requestTopic, replyTopic string, pending *PendingTracker) *Producer {
	if publisher == nil {
		panic("missing publisher")
	}
	if requestTopic == "" {
		panic("missing request topic")
	}
	if replyTopic == "" {
		panic("missing reply topic")
	}
	return &Producer{
		publisher:    publisher,
		requestTopic: requestTopic,
		replyTopic:   replyTopic,
		pending:      pending,
	}
}

func (p *Producer) RequestSupply(ctx context.Context, itemID string, currentQuantity, requestedQuantity int) error {
	if p.publisher == nil {
		return entities.ErrTransportNotReady
	}

	correlationID := uuid.NewString()

	request := entities.SupplyRequest{
		ItemID:            itemID,
		CurrentQuantity:   currentQuantity,
		RequestedQuantity: requestedQuantity,
		ReplyTo:           p.replyTopic,
		CorrelationID:     correlationID,
	}
	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid supply request: %w", err)
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("could not marshal supply request: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(log.CorrelationIDMetadataKey, correlationID)
	msg.SetContext(ctx)

	if p.pending != nil {
		p.pending.Track(correlationID, itemID, requestedQuantity)
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"item_id":        itemID,
		"correlation_id": correlationID,
	}).Info("Sending supply request")

	if err := p.publisher.Publish(p.requestTopic, msg); err != nil {
		if p.pending != nil {
			p.pending.Forget(correlationID)
		}
		return fmt.Errorf("could not publish supply request: %w", err)
	}

	return nil
}
