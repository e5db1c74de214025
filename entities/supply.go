package entities

import (
	"errors"
	"time"
)

// SupplyRequest is published by the inventory service when an availability
// check finds less stock than requested. ReplyTo names the queue the supply
// service must publish its reply to.
type SupplyRequest struct {
	ItemID            string `json:"item_id"`
	CurrentQuantity   int    `json:"current_quantity"`
	RequestedQuantity int    `json:"requested_quantity"`
	ReplyTo           string `json:"reply_to"`
	CorrelationID     string `json:"correlation_id"`
}

func (r SupplyRequest) Validate() error {
	if r.ItemID == "" {
		return errors.New("supply request: empty item_id")
	}
	if r.CurrentQuantity < 0 {
		return errors.New("supply request: negative current_quantity")
	}
	if r.RequestedQuantity <= 0 {
		return errors.New("supply request: requested_quantity must be positive")
	}
	if r.ReplyTo == "" {
		return errors.New("supply request: empty reply_to")
	}
	if r.CorrelationID == "" {
		return errors.New("supply request: empty correlation_id")
	}
	return nil
}

// SupplyReply echoes the request's item id and correlation id.
type SupplyReply struct {
	ItemID        string `json:"item_id"`
	NewQuantity   int    `json:"new_quantity"`
	CorrelationID string `json:"correlation_id"`
}

func (r SupplyReply) Validate() error {
	if r.ItemID == "" {
		return errors.New("supply reply: empty item_id")
	}
	if r.CorrelationID == "" {
		return errors.New("supply reply: empty correlation_id")
	}
	return nil
}

// PendingSupplyRequest is what the inventory side remembers about an
// outstanding request when reply validation is enabled.
type PendingSupplyRequest struct {
	CorrelationID     string
	ItemID            string
	RequestedQuantity int
	SentAt            time.Time
}
