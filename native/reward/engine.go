package reward

import (
	"strconv"
	"strings"
	"time"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
	"hestia/native/restaurant"
)

// royaltyBasisPoints is the resale fee routed to the manager on every
// collection asset.
const royaltyBasisPoints = 200

type engineState interface {
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
	KVDelete(key []byte) error
}

// Engine manages the reward voucher lifecycle: collection creation, voucher
// registration, point purchases and redemption burns.
type Engine struct {
	st      engineState
	assets  AssetService
	gates   nativecommon.GateView
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a reward engine backed by the provided state manager and
// asset service.
func NewEngine(st engineState, assets AssetService) *Engine {
	return &Engine{
		st:      st,
		assets:  assets,
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetGateView wires the protocol circuit breaker. A nil view skips gate
// checks.
func (e *Engine) SetGateView(v nativecommon.GateView) {
	e.gates = v
}

// SetNowFunc overrides the time source.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	e.nowFn = now
}

func voucherKey(collection [32]byte) []byte {
	addr := state.VoucherAddress(collection)
	return addr[:]
}

func managerAuthority() Authority {
	addr := state.ManagerAddress()
	return Authority{Address: addr, Bump: state.Bump(addr)}
}

func (e *Engine) ownedRestaurant(caller [20]byte, addr [32]byte) (*restaurant.Restaurant, error) {
	rec := new(restaurant.Restaurant)
	found, err := e.st.KVGet(addr[:], rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRestaurantNotFound
	}
	if rec.Owner != caller {
		return nil, ErrUnauthorized
	}
	return rec, nil
}

// CreateCollection provisions a reward collection asset for a restaurant. The
// collection carries descriptive attributes, permanent manager delegates, a
// manager royalty and the protocol oracle hook. Owner only.
func (e *Engine) CreateCollection(caller [20]byte, restaurantAddr [32]byte, name, uri, sku string, category uint8) ([32]byte, error) {
	var zero [32]byte
	if err := nativecommon.Guard(e.gates, nativecommon.GateCreate); err != nil {
		return zero, err
	}
	rec, err := e.ownedRestaurant(caller, restaurantAddr)
	if err != nil {
		return zero, err
	}
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)

	spec := CollectionSpec{
		Address: state.RewardCollectionAddress(restaurantAddr, sku),
		Name:    name,
		URI:     strings.TrimSpace(uri),
		Attributes: []Attribute{
			{Key: "Sku", Value: sku},
			{Key: "Name", Value: name},
			{Key: "Category", Value: strconv.FormatUint(uint64(category), 10)},
			{Key: "Restaurant", Value: rec.Name},
		},
		Royalty:           Royalty{BasisPoints: royaltyBasisPoints, Recipient: state.ManagerAddress()},
		PermanentBurn:     true,
		PermanentFreeze:   true,
		PermanentTransfer: true,
		OracleHook:        state.ProtocolAddress(),
		Authority:         managerAuthority(),
	}
	id, err := e.assets.CreateCollection(spec)
	if err != nil {
		return zero, err
	}
	e.emit(events.RewardCollectionCreated{
		Restaurant: restaurantAddr,
		Collection: id,
		Sku:        sku,
		Name:       name,
	})
	return id, nil
}

// VoucherParams carries the registration arguments for a reward voucher.
type VoucherParams struct {
	ID           uint64
	ItemSku      uint64
	Collection   [32]byte
	Category     uint8
	Share        uint16
	Price        uint64
	StartingTime uint64
}

// AddVoucher registers a voucher against a collection whose update authority
// is the manager. Owner only.
func (e *Engine) AddVoucher(caller [20]byte, restaurantAddr [32]byte, params VoucherParams) error {
	if _, err := e.ownedRestaurant(caller, restaurantAddr); err != nil {
		return err
	}
	authority, ok := e.assets.CollectionAuthority(params.Collection)
	if !ok || authority != state.ManagerAddress() {
		return ErrInvalidRewardAuthority
	}
	if _, ok := restaurant.ParseMenuCategory(params.Category); !ok {
		return ErrInvalidCategory
	}
	// A zero share could never complete and would let ShareSold overrun it.
	if params.Share == 0 {
		return ErrInvalidShare
	}
	exists, err := e.st.KVGet(voucherKey(params.Collection), nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrVoucherExists
	}
	rec := &Voucher{
		State:        VoucherActive,
		ID:           params.ID,
		ItemSku:      params.ItemSku,
		Collection:   params.Collection,
		Restaurant:   restaurantAddr,
		Category:     params.Category,
		Share:        params.Share,
		ShareSold:    0,
		Price:        params.Price,
		StartingTime: params.StartingTime,
		Bump:         state.Bump(state.VoucherAddress(params.Collection)),
	}
	if err := e.st.KVPut(voucherKey(params.Collection), rec); err != nil {
		return err
	}
	e.emit(events.RewardVoucherAdded{
		Restaurant: restaurantAddr,
		Collection: params.Collection,
		ItemSku:    params.ItemSku,
		Share:      uint64(params.Share),
		Price:      params.Price,
	})
	return nil
}

// RemoveVoucher closes a voucher record, refund to owner. Owner only.
func (e *Engine) RemoveVoucher(caller [20]byte, restaurantAddr [32]byte, collection [32]byte) error {
	if _, err := e.ownedRestaurant(caller, restaurantAddr); err != nil {
		return err
	}
	exists, err := e.st.KVGet(voucherKey(collection), nil)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVoucherNotFound
	}
	if err := e.st.KVDelete(voucherKey(collection)); err != nil {
		return err
	}
	e.emit(events.RewardVoucherRemoved{Restaurant: restaurantAddr, Collection: collection, Refund: caller})
	return nil
}

// Voucher retrieves a voucher record by its collection.
func (e *Engine) Voucher(collection [32]byte) (*Voucher, bool) {
	out := new(Voucher)
	ok, err := e.st.KVGet(voucherKey(collection), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// BuyReward exchanges a customer's points for a voucher asset minted under the
// collection. Selling the final share rewrites the voucher in place as
// completed; point deduction and share accounting only happen after a
// successful mint.
func (e *Engine) BuyReward(caller [20]byte, restaurantAddr [32]byte, collection [32]byte, uri string) ([32]byte, error) {
	var zero [32]byte
	if err := nativecommon.Guard(e.gates, nativecommon.GateCreate); err != nil {
		return zero, err
	}
	voucher := new(Voucher)
	found, err := e.st.KVGet(voucherKey(collection), voucher)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, ErrVoucherNotFound
	}
	if voucher.State == VoucherCompleted {
		return zero, ErrVoucherCompleted
	}

	customerAddr := state.CustomerAddress(restaurantAddr, caller)
	customer := new(restaurant.Customer)
	found, err = e.st.KVGet(customerAddr[:], customer)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, ErrCustomerNotFound
	}
	if voucher.Price > customer.RewardPoints {
		return zero, ErrInsufficientPoints
	}

	asset, err := e.assets.MintAsset(AssetSpec{
		Collection: collection,
		VoucherID:  voucher.ID,
		URI:        strings.TrimSpace(uri),
		Owner:      caller,
		Authority:  managerAuthority(),
	})
	if err != nil {
		return zero, err
	}

	customer.RewardPoints -= voucher.Price
	if err := e.st.KVPut(customerAddr[:], customer); err != nil {
		return zero, err
	}

	completed := voucher.ShareSold+1 == voucher.Share
	if completed {
		voucher.complete()
	} else {
		voucher.ShareSold++
	}
	if err := e.st.KVPut(voucherKey(collection), voucher); err != nil {
		return zero, err
	}

	e.emit(events.RewardPurchased{
		Restaurant: restaurantAddr,
		Collection: collection,
		Asset:      asset,
		Customer:   caller,
		Price:      voucher.Price,
		ShareSold:  uint64(voucher.ShareSold),
		Completed:  completed,
	})
	return asset, nil
}

// Redeem burns a customer's voucher asset under the manager authority. It is
// invoked by the order engine when an order spends a reward; no point or
// share accounting happens here.
func (e *Engine) Redeem(customer [20]byte, restaurantAddr [32]byte, collection, asset [32]byte, orderID uint64) error {
	if err := nativecommon.Guard(e.gates, nativecommon.GateBurn); err != nil {
		return err
	}
	if err := e.assets.BurnAsset(asset, collection, managerAuthority()); err != nil {
		return err
	}
	e.emit(events.RewardRedeemed{
		Restaurant: restaurantAddr,
		Collection: collection,
		Asset:      asset,
		Customer:   customer,
		OrderID:    orderID,
	})
	return nil
}

func (e *Engine) emit(event events.Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}
