package order

// Status is the order state machine position. Orders always start Pending;
// Cancelled is terminal.
type Status uint8

const (
	StatusPending Status = iota
	StatusCompleted
	StatusFinalized
	StatusCancelled
)

// ParseStatus validates a status code.
func ParseStatus(code uint8) (Status, bool) {
	if code > uint8(StatusCancelled) {
		return 0, false
	}
	return Status(code), true
}

// String returns the canonical status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFinalized:
		return "finalized"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// CustomerOrder is a placed order. Total is the balance due after any reward
// discount, so cancellation clawbacks work off what was actually charged.
// UpdatedAt stays zero until the first status change.
type CustomerOrder struct {
	ID        uint64
	Customer  [20]byte
	Items     []uint64
	Total     uint64
	Status    uint8
	CreatedAt uint64
	UpdatedAt uint64
	Bump      uint8
}
