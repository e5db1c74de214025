package message

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v2/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	amqp091 "github.com/rabbitmq/amqp091-go"

	"stock/pkg/log"
)

// newAMQPConfig builds a queue-per-topic topology on the default exchange,
// matching the broker layout the services expect: the supply request queue
// is durable, reply queues are not. The connection is re-established with
// backoff and consumers are re-registered after a reconnect.
func newAMQPConfig(url string, durable bool, prefetch int) amqp.Config {
	var cfg amqp.Config
	if durable {
		cfg = amqp.NewDurableQueueConfig(url)
	} else {
		cfg = amqp.NewNonDurableQueueConfig(url)
	}

	cfg.Consume.Qos.PrefetchCount = prefetch

	// The broker envelope mirrors the body: correlation_id from message
	// metadata becomes the AMQP CorrelationId property.
	cfg.Marshaler = amqp.DefaultMarshaler{
		PostprocessPublishing: func(publishing amqp091.Publishing) amqp091.Publishing {
			publishing.ContentType = "application/json"
			if id, ok := publishing.Headers[log.CorrelationIDMetadataKey].(string); ok {
				publishing.CorrelationId = id
			}
			return publishing
		},
	}

	return cfg
}

func NewAMQPPublisher(url string, durable bool, watermillLogger watermill.LoggerAdapter) message.Publisher {
	pub, err := amqp.NewPublisher(newAMQPConfig(url, durable, 1), watermillLogger)
	if err != nil {
		panic(err)
	}
	return pub
}

func NewAMQPSubscriber(url string, durable bool, prefetch int, watermillLogger watermill.LoggerAdapter) message.Subscriber {
	sub, err := amqp.NewSubscriber(newAMQPConfig(url, durable, prefetch), watermillLogger)
	if err != nil {
		panic(err)
	}
	return sub
}
