package log

import "github.com/ThreeDotsLabs/watermill/message"

// CorrelationPublisherDecorator stamps outgoing messages with the
// correlation id from the publishing context, unless the message already
// carries one.
type CorrelationPublisherDecorator struct {
	message.Publisher
}

func (d CorrelationPublisherDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		if messages[i].Metadata.Get(CorrelationIDMetadataKey) != "" {
			continue
		}
		if correlationID := CorrelationIDFromContext(messages[i].Context()); correlationID != "" {
			messages[i].Metadata.Set(CorrelationIDMetadataKey, correlationID)
		}
	}

	return d.Publisher.Publish(topic, messages...)
}
