package events

import "hestia/core/types"

const (
	// TypeRestaurantCreated is emitted when a restaurant catalog is created.
	TypeRestaurantCreated = "restaurant.created"
	// TypeEmployeeAdded is emitted when a wallet is enrolled as an employee.
	TypeEmployeeAdded = "restaurant.employee.added"
	// TypeEmployeePromoted is emitted when an employee's rank changes.
	TypeEmployeePromoted = "restaurant.employee.promoted"
	// TypeEmployeeRemoved is emitted when an employee record is closed.
	TypeEmployeeRemoved = "restaurant.employee.removed"
	// TypeInventoryUpdated is emitted when an inventory item is created or
	// its price/stock updated.
	TypeInventoryUpdated = "restaurant.inventory.updated"
	// TypeInventoryRemoved is emitted when an inventory item is closed.
	TypeInventoryRemoved = "restaurant.inventory.removed"
	// TypeMenuItemUpdated is emitted when a menu item is created or updated.
	TypeMenuItemUpdated = "restaurant.menu.item.updated"
	// TypeMenuItemToggled is emitted when a menu item's availability flips.
	TypeMenuItemToggled = "restaurant.menu.item.toggled"
)

// RestaurantCreated captures a newly provisioned restaurant catalog.
type RestaurantCreated struct {
	Restaurant [32]byte
	Owner      [20]byte
	Name       string
	Symbol     string
	Currency   string
}

// EventType implements the Event interface.
func (RestaurantCreated) EventType() string { return TypeRestaurantCreated }

// Event converts the creation to the generic event payload.
func (e RestaurantCreated) Event() *types.Event {
	return &types.Event{
		Type: TypeRestaurantCreated,
		Attributes: map[string]string{
			"restaurant": hexHash(e.Restaurant),
			"owner":      hexAddr(e.Owner),
			"name":       e.Name,
			"symbol":     e.Symbol,
			"currency":   e.Currency,
		},
	}
}

// EmployeeAdded captures a new employee enrollment.
type EmployeeAdded struct {
	Restaurant [32]byte
	Wallet     [20]byte
	Rank       uint8
	Username   string
}

// EventType implements the Event interface.
func (EmployeeAdded) EventType() string { return TypeEmployeeAdded }

// EmployeePromoted captures an in-place rank change.
type EmployeePromoted struct {
	Restaurant [32]byte
	Wallet     [20]byte
	Rank       uint8
}

// EventType implements the Event interface.
func (EmployeePromoted) EventType() string { return TypeEmployeePromoted }

// EmployeeRemoved captures the closure of an employee record.
type EmployeeRemoved struct {
	Restaurant [32]byte
	Wallet     [20]byte
	Refund     [20]byte
}

// EventType implements the Event interface.
func (EmployeeRemoved) EventType() string { return TypeEmployeeRemoved }

// InventoryUpdated captures an inventory upsert.
type InventoryUpdated struct {
	Restaurant [32]byte
	Sku        uint64
	Price      uint64
	Stock      uint64
	Created    bool
}

// EventType implements the Event interface.
func (InventoryUpdated) EventType() string { return TypeInventoryUpdated }

// InventoryRemoved captures the closure of an inventory record.
type InventoryRemoved struct {
	Restaurant [32]byte
	Sku        uint64
	Refund     [20]byte
}

// EventType implements the Event interface.
func (InventoryRemoved) EventType() string { return TypeInventoryRemoved }

// MenuItemUpdated captures a menu item upsert.
type MenuItemUpdated struct {
	Restaurant [32]byte
	Sku        uint64
	Price      uint64
	Active     bool
}

// EventType implements the Event interface.
func (MenuItemUpdated) EventType() string { return TypeMenuItemUpdated }

// MenuItemToggled captures an availability flip.
type MenuItemToggled struct {
	Restaurant [32]byte
	Sku        uint64
	Active     bool
}

// EventType implements the Event interface.
func (MenuItemToggled) EventType() string { return TypeMenuItemToggled }
