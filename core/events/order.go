package events

import "hestia/core/types"

const (
	// TypeOrderCreated is emitted when an order is placed and paid.
	TypeOrderCreated = "order.created"
	// TypeOrderUpdated is emitted when an order's status changes. The payload
	// carries the full order snapshot.
	TypeOrderUpdated = "order.updated"
	// TypeOrderCancelled is emitted when an order is cancelled.
	TypeOrderCancelled = "order.cancelled"
)

// OrderCreated captures a newly placed order.
type OrderCreated struct {
	Restaurant [32]byte
	OrderID    uint64
	Customer   [20]byte
	Total      uint64
	BalanceDue uint64
	Redeemed   bool
}

// EventType implements the Event interface.
func (OrderCreated) EventType() string { return TypeOrderCreated }

// Event converts the order creation to the generic event payload.
func (e OrderCreated) Event() *types.Event {
	return &types.Event{
		Type: TypeOrderCreated,
		Attributes: map[string]string{
			"restaurant":  hexHash(e.Restaurant),
			"order_id":    formatUint(e.OrderID),
			"customer":    hexAddr(e.Customer),
			"total":       formatUint(e.Total),
			"balance_due": formatUint(e.BalanceDue),
			"redeemed":    strconvBool(e.Redeemed),
		},
	}
}

// OrderUpdated carries the full order snapshot after a status change. Both the
// status update and the cancellation paths reuse this shape.
type OrderUpdated struct {
	Restaurant [32]byte
	OrderID    uint64
	Customer   [20]byte
	Items      uint64
	Total      uint64
	Status     uint8
	StatusName string
	CreatedAt  uint64
	UpdatedAt  uint64
}

// EventType implements the Event interface.
func (OrderUpdated) EventType() string { return TypeOrderUpdated }

// Event converts the snapshot to the generic event payload.
func (e OrderUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeOrderUpdated,
		Attributes: map[string]string{
			"restaurant": hexHash(e.Restaurant),
			"order_id":   formatUint(e.OrderID),
			"customer":   hexAddr(e.Customer),
			"items":      formatUint(e.Items),
			"total":      formatUint(e.Total),
			"status":     e.StatusName,
			"created_at": formatUint(e.CreatedAt),
			"updated_at": formatUint(e.UpdatedAt),
		},
	}
}

// OrderCancelled captures an order cancellation.
type OrderCancelled struct {
	Restaurant [32]byte
	OrderID    uint64
	Customer   [20]byte
	Caller     [20]byte
}

// EventType implements the Event interface.
func (OrderCancelled) EventType() string { return TypeOrderCancelled }
