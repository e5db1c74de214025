package message

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"stock/message/supply"
)

// NewSupplyRouter consumes the durable supply request queue with the
// supply service's consumer.
func NewSupplyRouter(
	requestTopic string,
	subscriber message.Subscriber,
	consumer *supply.Consumer,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	router.AddNoPublisherHandler(
		"handle_supply_request",
		requestTopic,
		subscriber,
		consumer.Handle,
	)

	return router
}

// NewInventoryRouter consumes the inventory service's reply queue with
// the reconciler.
func NewInventoryRouter(
	replyTopic string,
	subscriber message.Subscriber,
	reconciler *supply.Reconciler,
	watermillLogger watermill.LoggerAdapter,
) *message.Router {
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	useMiddlewares(router, watermillLogger)

	router.AddNoPublisherHandler(
		"reconcile_supply_reply",
		replyTopic,
		subscriber,
		reconciler.Handle,
	)

	return router
}
