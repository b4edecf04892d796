package reward

// Voucher lifecycle states. A completed voucher keeps its address but drops
// its mutable fields.
const (
	VoucherActive uint8 = iota
	VoucherCompleted
)

// Voucher tracks how many shares of a reward collection have been sold and at
// what point price. When the last share sells the record is rewritten in
// place as completed.
type Voucher struct {
	State        uint8
	ID           uint64
	ItemSku      uint64
	Collection   [32]byte
	Restaurant   [32]byte
	Category     uint8
	Share        uint16
	ShareSold    uint16
	Price        uint64
	StartingTime uint64
	Bump         uint8
}

func (v *Voucher) complete() {
	v.State = VoucherCompleted
	v.ShareSold = v.Share
	v.ItemSku = 0
	v.StartingTime = 0
}
