package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"stock/config"
)

// NewPublisher picks the broker driver from config. durable selects the
// queue topology on AMQP and is ignored by the Redis Streams driver.
func NewPublisher(cfg config.Config, durable bool, watermillLogger watermill.LoggerAdapter) message.Publisher {
	switch cfg.BrokerDriver {
	case config.DriverAMQP:
		return NewAMQPPublisher(cfg.RabbitMQURL, durable, watermillLogger)
	case config.DriverRedis:
		return NewRedisPublisher(NewRedisClient(cfg.RedisAddr), watermillLogger)
	default:
		panic(fmt.Sprintf("unknown broker driver: %q", cfg.BrokerDriver))
	}
}

func NewSubscriber(cfg config.Config, durable bool, consumerGroup string, watermillLogger watermill.LoggerAdapter) message.Subscriber {
	switch cfg.BrokerDriver {
	case config.DriverAMQP:
		return NewAMQPSubscriber(cfg.RabbitMQURL, durable, cfg.PrefetchCount, watermillLogger)
	case config.DriverRedis:
		return NewRedisSubscriber(NewRedisClient(cfg.RedisAddr), consumerGroup, watermillLogger)
	default:
		panic(fmt.Sprintf("unknown broker driver: %q", cfg.BrokerDriver))
	}
}
