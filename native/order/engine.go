package order

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"strings"
	"time"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
	"hestia/native/protocol"
	"hestia/native/restaurant"
	"hestia/native/reward"
)

type engineState interface {
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
	Token(symbol string) (*state.TokenMetadata, error)
	Transfer(from, to []byte, symbol string, amount *big.Int) error
	Snapshot() func()
}

type rewardService interface {
	Redeem(customer [20]byte, restaurant [32]byte, collection, asset [32]byte, orderID uint64) error
}

// Engine runs the order state machine and the dual-path payment protocol.
type Engine struct {
	st      engineState
	rewards rewardService
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates an order engine backed by the provided state manager.
func NewEngine(st engineState) *Engine {
	return &Engine{
		st:      st,
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetRewardService wires the engine used to burn redeemed voucher assets.
func (e *Engine) SetRewardService(r rewardService) {
	e.rewards = r
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used for order timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	e.nowFn = now
}

func orderKey(restaurant [32]byte, id uint64) []byte {
	addr := state.OrderAddress(restaurant, id)
	return addr[:]
}

func customerKey(restaurant [32]byte, wallet [20]byte) []byte {
	addr := state.CustomerAddress(restaurant, wallet)
	return addr[:]
}

// Params carries the order placement arguments. The caller is always the
// ordering customer.
type Params struct {
	OrderID      uint64
	CustomerName string
	Items        []uint64
	Total        uint64
	UseReward    bool
	// RewardCollection and RewardAsset identify the voucher being redeemed
	// when UseReward is set.
	RewardCollection [32]byte
	RewardAsset      [32]byte
}

// AddOrder places an order, settles payment via one of the two paths, and
// creates or updates the customer's standing. All writes happen against a
// snapshot so a failure leaves no partial state.
func (e *Engine) AddOrder(caller [20]byte, restaurantAddr [32]byte, params Params, ixLog InstructionLog) error {
	restore := e.st.Snapshot()
	if err := e.addOrder(caller, restaurantAddr, params, ixLog); err != nil {
		restore()
		return err
	}
	return nil
}

func (e *Engine) addOrder(caller [20]byte, restaurantAddr [32]byte, params Params, ixLog InstructionLog) error {
	venue := new(restaurant.Restaurant)
	found, err := e.st.KVGet(restaurantAddr[:], venue)
	if err != nil {
		return err
	}
	if !found {
		return ErrRestaurantNotFound
	}
	meta, err := e.st.Token(venue.Currency)
	if err != nil {
		return err
	}
	pow10 := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(meta.Decimals)), nil)

	balanceDue := params.Total
	if params.UseReward {
		discount, err := e.redemptionDiscount(restaurantAddr, params.RewardCollection)
		if err != nil {
			return err
		}
		if discount >= balanceDue {
			balanceDue = 0
		} else {
			balanceDue -= discount
		}
	}
	amountDue := new(big.Int).Mul(new(big.Int).SetUint64(balanceDue), pow10)

	if ixLog.CurrentIndex() == 0 {
		if err := e.st.Transfer(caller[:], restaurantAddr[:], venue.Currency, amountDue); err != nil {
			return err
		}
	} else {
		if err := verifySignedPayment(ixLog, amountDue); err != nil {
			return err
		}
	}

	if params.UseReward {
		if e.rewards == nil {
			return ErrRewardsUnavailable
		}
		if err := e.rewards.Redeem(caller, restaurantAddr, params.RewardCollection, params.RewardAsset, params.OrderID); err != nil {
			return err
		}
	}

	accrued := new(big.Int).Div(new(big.Int).SetUint64(balanceDue), pow10).Uint64()
	customer := new(restaurant.Customer)
	found, err = e.st.KVGet(customerKey(restaurantAddr, caller), customer)
	if err != nil {
		return err
	}
	if !found {
		name := strings.TrimSpace(params.CustomerName)
		if name == "" {
			name = "no name"
		}
		customer = &restaurant.Customer{
			Wallet:       caller,
			Restaurant:   restaurantAddr,
			Name:         name,
			MemberSince:  nativecommon.Backdated(e.nowFn()),
			TotalOrders:  1,
			RewardPoints: accrued,
			Bump:         state.Bump(state.CustomerAddress(restaurantAddr, caller)),
		}
	} else {
		customer.TotalOrders++
		customer.RewardPoints += accrued
	}
	if err := e.st.KVPut(customerKey(restaurantAddr, caller), customer); err != nil {
		return err
	}

	rec := &CustomerOrder{
		ID:        params.OrderID,
		Customer:  caller,
		Items:     append([]uint64(nil), params.Items...),
		Total:     balanceDue,
		Status:    uint8(StatusPending),
		CreatedAt: nativecommon.Backdated(e.nowFn()),
		Bump:      state.Bump(state.OrderAddress(restaurantAddr, params.OrderID)),
	}
	if err := e.st.KVPut(orderKey(restaurantAddr, params.OrderID), rec); err != nil {
		return err
	}

	e.emit(events.OrderCreated{
		Restaurant: restaurantAddr,
		OrderID:    params.OrderID,
		Customer:   caller,
		Total:      params.Total,
		BalanceDue: balanceDue,
		Redeemed:   params.UseReward,
	})
	return nil
}

// redemptionDiscount resolves the menu item price linked to the redeemed
// voucher.
func (e *Engine) redemptionDiscount(restaurantAddr [32]byte, collection [32]byte) (uint64, error) {
	voucherAddr := state.VoucherAddress(collection)
	voucher := new(reward.Voucher)
	found, err := e.st.KVGet(voucherAddr[:], voucher)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrVoucherNotFound
	}
	itemAddr := state.MenuItemAddress(restaurantAddr, voucher.ItemSku)
	item := new(restaurant.MenuItem)
	found, err = e.st.KVGet(itemAddr[:], item)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrMenuItemNotFound
	}
	return item.Price, nil
}

// verifySignedPayment checks the preceding ed25519 verification instruction:
// it must come from the verifier program, carry the compiled-in signing
// authority, and assert a paid amount no greater than the balance due.
// Underpayment passes; reconciliation happens off-chain.
func verifySignedPayment(ixLog InstructionLog, amountDue *big.Int) error {
	prev, ok := ixLog.InstructionAt(ixLog.CurrentIndex() - 1)
	if !ok {
		return ErrInvalidInstruction
	}
	if prev.ProgramID != Ed25519VerifierID {
		return ErrInvalidInstruction
	}
	if len(prev.Data) < sigAmountEnd {
		return ErrInvalidInstruction
	}
	if !bytes.Equal(prev.Data[sigAuthorityStart:sigAuthorityEnd], protocol.SigningAuthority[:]) {
		return ErrSignatureAuthorityMismatch
	}
	paid := binary.LittleEndian.Uint32(prev.Data[sigAmountStart:sigAmountEnd])
	if new(big.Int).SetUint64(uint64(paid)).Cmp(amountDue) > 0 {
		return ErrPriceMismatch
	}
	return nil
}

// UpdateOrder sets an order's status. The caller must be an employee of the
// restaurant with rank strictly above team member.
func (e *Engine) UpdateOrder(caller [20]byte, restaurantAddr [32]byte, orderID uint64, statusCode uint8) error {
	restore := e.st.Snapshot()
	if err := e.updateOrder(caller, restaurantAddr, orderID, statusCode); err != nil {
		restore()
		return err
	}
	return nil
}

func (e *Engine) updateOrder(caller [20]byte, restaurantAddr [32]byte, orderID uint64, statusCode uint8) error {
	exists, err := e.st.KVGet(restaurantAddr[:], nil)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRestaurantNotFound
	}
	empAddr := state.EmployeeAddress(restaurantAddr, caller)
	emp := new(restaurant.Employee)
	found, err := e.st.KVGet(empAddr[:], emp)
	if err != nil {
		return err
	}
	if !found || emp.Rank == uint8(restaurant.RankTeamMember) {
		return ErrUnauthorized
	}
	status, ok := ParseStatus(statusCode)
	if !ok {
		return ErrInvalidStatusType
	}
	rec := new(CustomerOrder)
	found, err = e.st.KVGet(orderKey(restaurantAddr, orderID), rec)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	rec.Status = uint8(status)
	rec.UpdatedAt = uint64(e.nowFn())
	if err := e.st.KVPut(orderKey(restaurantAddr, orderID), rec); err != nil {
		return err
	}
	e.emitSnapshot(restaurantAddr, rec)
	return nil
}

// CancelOrder terminally cancels an order and claws back part of the
// customer's standing: one order and total/100 points, both floored at zero.
// Authorized for the order's customer and the restaurant owner.
func (e *Engine) CancelOrder(caller [20]byte, restaurantAddr [32]byte, orderID uint64) error {
	restore := e.st.Snapshot()
	if err := e.cancelOrder(caller, restaurantAddr, orderID); err != nil {
		restore()
		return err
	}
	return nil
}

func (e *Engine) cancelOrder(caller [20]byte, restaurantAddr [32]byte, orderID uint64) error {
	venue := new(restaurant.Restaurant)
	found, err := e.st.KVGet(restaurantAddr[:], venue)
	if err != nil {
		return err
	}
	if !found {
		return ErrRestaurantNotFound
	}
	rec := new(CustomerOrder)
	found, err = e.st.KVGet(orderKey(restaurantAddr, orderID), rec)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	if caller != rec.Customer && caller != venue.Owner {
		return ErrUnauthorized
	}
	if rec.Status == uint8(StatusCancelled) {
		return ErrAlreadyCancelled
	}
	rec.Status = uint8(StatusCancelled)
	rec.UpdatedAt = uint64(e.nowFn())
	if err := e.st.KVPut(orderKey(restaurantAddr, orderID), rec); err != nil {
		return err
	}

	customer := new(restaurant.Customer)
	found, err = e.st.KVGet(customerKey(restaurantAddr, rec.Customer), customer)
	if err != nil {
		return err
	}
	if found {
		if customer.TotalOrders > 0 {
			customer.TotalOrders--
		}
		clawback := rec.Total / 100
		if clawback > customer.RewardPoints {
			customer.RewardPoints = 0
		} else {
			customer.RewardPoints -= clawback
		}
		if err := e.st.KVPut(customerKey(restaurantAddr, rec.Customer), customer); err != nil {
			return err
		}
	}

	e.emitSnapshot(restaurantAddr, rec)
	e.emit(events.OrderCancelled{
		Restaurant: restaurantAddr,
		OrderID:    orderID,
		Customer:   rec.Customer,
		Caller:     caller,
	})
	return nil
}

// Order retrieves an order record.
func (e *Engine) Order(restaurantAddr [32]byte, orderID uint64) (*CustomerOrder, bool) {
	out := new(CustomerOrder)
	ok, err := e.st.KVGet(orderKey(restaurantAddr, orderID), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

func (e *Engine) emitSnapshot(restaurantAddr [32]byte, rec *CustomerOrder) {
	e.emit(events.OrderUpdated{
		Restaurant: restaurantAddr,
		OrderID:    rec.ID,
		Customer:   rec.Customer,
		Items:      uint64(len(rec.Items)),
		Total:      rec.Total,
		Status:     rec.Status,
		StatusName: Status(rec.Status).String(),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	})
}

func (e *Engine) emit(event events.Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}
