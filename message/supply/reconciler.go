package supply

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"

	"stock/entities"
	"stock/pkg/log"
)

type InventoryStore interface {
	IncreaseQuantity(ctx context.Context, name string, amount int) (entities.Product, error)
	SetQuantity(ctx context.Context, name string, quantity int) (entities.Product, error)
}

// ReconcilePolicy decides how a reply's new_quantity lands in the store.
// PolicyIncrease adds the whole figure on top of the stored quantity;
// since the supply service already added the requested amount to the
// reported quantity, a grant lands additively on both sides.
// PolicyAbsolute treats new_quantity as the resulting stock level instead.
type ReconcilePolicy string

const (
	PolicyIncrease ReconcilePolicy = "increase"
	PolicyAbsolute ReconcilePolicy = "absolute"
)

func ParseReconcilePolicy(s string) (ReconcilePolicy, error) {
	switch ReconcilePolicy(s) {
	case PolicyIncrease:
		return PolicyIncrease, nil
	case PolicyAbsolute:
		return PolicyAbsolute, nil
	default:
		return "", fmt.Errorf("unknown reconcile policy: %q", s)
	}
}

// Reconciler applies supply replies to the inventory store, keyed by
// product name. With a nil tracker any well-formed reply is applied;
// with a tracker, replies whose correlation id is unknown or expired
// are rejected.
type Reconciler struct {
	store   InventoryStore
	policy  ReconcilePolicy
	pending *PendingTracker
}

func NewReconciler(store InventoryStore, policy ReconcilePolicy, pending *PendingTracker) *Reconciler {
	if store == nil {
		panic("missing inventory store")
	}
	if policy != PolicyIncrease && policy != PolicyAbsolute {
		panic(fmt.Sprintf("unknown reconcile policy: %q", policy))
	}
	return &Reconciler{
		store:   store,
		policy:  policy,
		pending: pending,
	}
}

func (r *Reconciler) Handle(msg *message.Message) error {
	outcome, err := r.process(msg)
	if outcome == Retry {
		return err
	}
	if err != nil {
		log.FromContext(msg.Context()).WithError(err).Error("Dropping supply reply")
	}
	return nil
}

func (r *Reconciler) process(msg *message.Message) (Outcome, error) {
	var reply entities.SupplyReply
	if err := json.Unmarshal(msg.Payload, &reply); err != nil {
		return Rejected, fmt.Errorf("could not decode supply reply: %w", err)
	}
	if err := reply.Validate(); err != nil {
		return Rejected, err
	}

	if r.pending != nil {
		if _, ok := r.pending.Resolve(reply.CorrelationID); !ok {
			return Rejected, fmt.Errorf("no pending supply request for correlation id %q", reply.CorrelationID)
		}
	}

	ctx := msg.Context()

	var (
		product entities.Product
		err     error
	)
	switch r.policy {
	case PolicyAbsolute:
		product, err = r.store.SetQuantity(ctx, reply.ItemID, reply.NewQuantity)
	default:
		product, err = r.store.IncreaseQuantity(ctx, reply.ItemID, reply.NewQuantity)
	}
	if err != nil {
		return Rejected, fmt.Errorf("could not apply supply reply for %q: %w", reply.ItemID, err)
	}

	log.FromContext(ctx).WithFields(logrus.Fields{
		"item_id":        reply.ItemID,
		"new_quantity":   reply.NewQuantity,
		"quantity":       product.Quantity,
		"correlation_id": reply.CorrelationID,
	}).Info("Applied supply reply")

	return Processed, nil
}
