package events

const (
	// TypeRewardCollectionCreated is emitted when a reward collection asset is
	// provisioned for a restaurant.
	TypeRewardCollectionCreated = "reward.collection.created"
	// TypeRewardVoucherAdded is emitted when a voucher is registered against a
	// collection.
	TypeRewardVoucherAdded = "reward.voucher.added"
	// TypeRewardVoucherRemoved is emitted when a voucher record is closed.
	TypeRewardVoucherRemoved = "reward.voucher.removed"
	// TypeRewardPurchased is emitted when a customer buys a reward with
	// points.
	TypeRewardPurchased = "reward.purchased"
	// TypeRewardRedeemed is emitted when a reward asset is burned against an
	// order.
	TypeRewardRedeemed = "reward.redeemed"
)

// RewardCollectionCreated captures a newly created collection asset.
type RewardCollectionCreated struct {
	Restaurant [32]byte
	Collection [32]byte
	Sku        string
	Name       string
}

// EventType implements the Event interface.
func (RewardCollectionCreated) EventType() string { return TypeRewardCollectionCreated }

// RewardVoucherAdded captures a voucher registration.
type RewardVoucherAdded struct {
	Restaurant [32]byte
	Collection [32]byte
	ItemSku    uint64
	Share      uint64
	Price      uint64
}

// EventType implements the Event interface.
func (RewardVoucherAdded) EventType() string { return TypeRewardVoucherAdded }

// RewardVoucherRemoved captures the closure of a voucher record.
type RewardVoucherRemoved struct {
	Restaurant [32]byte
	Collection [32]byte
	Refund     [20]byte
}

// EventType implements the Event interface.
func (RewardVoucherRemoved) EventType() string { return TypeRewardVoucherRemoved }

// RewardPurchased captures a points-for-asset purchase.
type RewardPurchased struct {
	Restaurant [32]byte
	Collection [32]byte
	Asset      [32]byte
	Customer   [20]byte
	Price      uint64
	ShareSold  uint64
	Completed  bool
}

// EventType implements the Event interface.
func (RewardPurchased) EventType() string { return TypeRewardPurchased }

// RewardRedeemed captures the burn of a reward asset against an order.
type RewardRedeemed struct {
	Restaurant [32]byte
	Collection [32]byte
	Asset      [32]byte
	Customer   [20]byte
	OrderID    uint64
}

// EventType implements the Event interface.
func (RewardRedeemed) EventType() string { return TypeRewardRedeemed }
