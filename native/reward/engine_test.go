package reward_test

import (
	"errors"
	"fmt"
	"testing"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
	"hestia/native/restaurant"
	"hestia/native/reward"
	"hestia/storage"
	statetrie "hestia/storage/trie"
)

type capturingEmitter struct {
	events []events.Event
}

func (c *capturingEmitter) Emit(e events.Event) {
	c.events = append(c.events, e)
}

type fakeAssets struct {
	collections map[[32]byte]reward.CollectionSpec
	minted      []reward.AssetSpec
	burned      [][32]byte
	mintErr     error
	nextAsset   byte
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{collections: make(map[[32]byte]reward.CollectionSpec)}
}

func (f *fakeAssets) CreateCollection(spec reward.CollectionSpec) ([32]byte, error) {
	f.collections[spec.Address] = spec
	return spec.Address, nil
}

func (f *fakeAssets) MintAsset(spec reward.AssetSpec) ([32]byte, error) {
	if f.mintErr != nil {
		return [32]byte{}, f.mintErr
	}
	f.minted = append(f.minted, spec)
	f.nextAsset++
	return [32]byte{0xA0, f.nextAsset}, nil
}

func (f *fakeAssets) BurnAsset(asset, collection [32]byte, authority reward.Authority) error {
	f.burned = append(f.burned, asset)
	return nil
}

func (f *fakeAssets) CollectionAuthority(collection [32]byte) ([32]byte, bool) {
	spec, ok := f.collections[collection]
	if !ok {
		return [32]byte{}, false
	}
	return spec.Authority.Address, true
}

type lockedGates struct{}

func (lockedGates) GateApproved(string) bool { return false }

var owner = [20]byte{0x01}

type fixture struct {
	engine  *reward.Engine
	assets  *fakeAssets
	manager *state.Manager
	venue   [32]byte
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(func() { db.Close() })
	tr, err := statetrie.NewTrie(db, nil)
	if err != nil {
		t.Fatalf("create trie: %v", err)
	}
	manager := state.NewManager(tr)
	if err := manager.RegisterToken("USDH", "Hestia Dollar", 6); err != nil {
		t.Fatalf("register token: %v", err)
	}
	venues := restaurant.NewEngine(manager)
	venues.SetNowFunc(func() int64 { return 1_700_000_000 })
	venue, err := venues.CreateRestaurant(owner, 1, "Hestia Cafe", "HST", "USDH", "")
	if err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	assets := newFakeAssets()
	engine := reward.NewEngine(manager, assets)
	engine.SetNowFunc(func() int64 { return 1_700_000_000 })
	return &fixture{engine: engine, assets: assets, manager: manager, venue: venue}
}

func (f *fixture) seedCustomer(t *testing.T, wallet [20]byte, points uint64) {
	t.Helper()
	addr := state.CustomerAddress(f.venue, wallet)
	customer := &restaurant.Customer{
		Wallet:       wallet,
		Restaurant:   f.venue,
		Name:         "pat",
		MemberSince:  1,
		TotalOrders:  1,
		RewardPoints: points,
		Bump:         state.Bump(addr),
	}
	if err := f.manager.KVPut(addr[:], customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
}

func (f *fixture) newCollection(t *testing.T) [32]byte {
	t.Helper()
	id, err := f.engine.CreateCollection(owner, f.venue, "Free Combo", "ipfs://combo", "CMB-1", 0)
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return id
}

func TestCreateCollectionSpec(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)

	spec, ok := f.assets.collections[id]
	if !ok {
		t.Fatalf("expected collection created")
	}
	if spec.Authority.Address != state.ManagerAddress() {
		t.Fatalf("expected manager update authority")
	}
	if spec.Royalty.BasisPoints != 200 || spec.Royalty.Recipient != state.ManagerAddress() {
		t.Fatalf("unexpected royalty %+v", spec.Royalty)
	}
	if !spec.PermanentBurn || !spec.PermanentFreeze || !spec.PermanentTransfer {
		t.Fatalf("expected permanent delegates")
	}
	if spec.OracleHook != state.ProtocolAddress() {
		t.Fatalf("expected oracle hook at protocol address")
	}
	if len(spec.Attributes) != 4 || spec.Attributes[0].Key != "Sku" || spec.Attributes[0].Value != "CMB-1" {
		t.Fatalf("unexpected attributes %+v", spec.Attributes)
	}
	if spec.Attributes[3].Value != "Hestia Cafe" {
		t.Fatalf("expected restaurant name attribute, got %q", spec.Attributes[3].Value)
	}
}

func TestCreateCollectionGateLocked(t *testing.T) {
	f := newFixture(t)
	f.engine.SetGateView(lockedGates{})
	if _, err := f.engine.CreateCollection(owner, f.venue, "x", "", "S", 0); !errors.Is(err, nativecommon.ErrProtocolLocked) {
		t.Fatalf("expected ErrProtocolLocked, got %v", err)
	}
}

func TestAddVoucher(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	params := reward.VoucherParams{ID: 1, ItemSku: 7, Collection: id, Category: 0, Share: 3, Price: 50}

	if err := f.engine.AddVoucher([20]byte{0x99}, f.venue, params); !errors.Is(err, reward.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	foreign := params
	foreign.Collection = [32]byte{0xEE}
	if err := f.engine.AddVoucher(owner, f.venue, foreign); !errors.Is(err, reward.ErrInvalidRewardAuthority) {
		t.Fatalf("expected ErrInvalidRewardAuthority, got %v", err)
	}
	bad := params
	bad.Category = 9
	if err := f.engine.AddVoucher(owner, f.venue, bad); !errors.Is(err, reward.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	zero := params
	zero.Share = 0
	if err := f.engine.AddVoucher(owner, f.venue, zero); !errors.Is(err, reward.ErrInvalidShare) {
		t.Fatalf("expected ErrInvalidShare, got %v", err)
	}
	if err := f.engine.AddVoucher(owner, f.venue, params); err != nil {
		t.Fatalf("add voucher: %v", err)
	}
	if err := f.engine.AddVoucher(owner, f.venue, params); !errors.Is(err, reward.ErrVoucherExists) {
		t.Fatalf("expected ErrVoucherExists, got %v", err)
	}
	voucher, ok := f.engine.Voucher(id)
	if !ok || voucher.ShareSold != 0 || voucher.State != reward.VoucherActive {
		t.Fatalf("unexpected voucher %+v", voucher)
	}
}

func TestBuyRewardDeductsPointsAndCompletes(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	if err := f.engine.AddVoucher(owner, f.venue, reward.VoucherParams{ID: 1, ItemSku: 7, Collection: id, Share: 2, Price: 50}); err != nil {
		t.Fatalf("add voucher: %v", err)
	}
	buyer := [20]byte{0x30}
	f.seedCustomer(t, buyer, 120)
	emitter := &capturingEmitter{}
	f.engine.SetEmitter(emitter)

	if _, err := f.engine.BuyReward(buyer, f.venue, id, "ipfs://v1"); err != nil {
		t.Fatalf("buy reward: %v", err)
	}
	voucher, _ := f.engine.Voucher(id)
	if voucher.ShareSold != 1 || voucher.State != reward.VoucherActive {
		t.Fatalf("expected one share sold, got %+v", voucher)
	}

	if _, err := f.engine.BuyReward(buyer, f.venue, id, "ipfs://v2"); err != nil {
		t.Fatalf("buy final share: %v", err)
	}
	voucher, _ = f.engine.Voucher(id)
	if voucher.State != reward.VoucherCompleted {
		t.Fatalf("expected completed voucher, got %+v", voucher)
	}
	if voucher.ShareSold != voucher.Share {
		t.Fatalf("expected share sold pinned to share")
	}
	if voucher.ItemSku != 0 || voucher.StartingTime != 0 {
		t.Fatalf("expected mutable fields dropped, got %+v", voucher)
	}

	customerAddr := state.CustomerAddress(f.venue, buyer)
	customer := new(restaurant.Customer)
	if ok, err := f.manager.KVGet(customerAddr[:], customer); err != nil || !ok {
		t.Fatalf("load customer: %v", err)
	}
	if customer.RewardPoints != 20 {
		t.Fatalf("expected 20 points left, got %d", customer.RewardPoints)
	}

	if _, err := f.engine.BuyReward(buyer, f.venue, id, "ipfs://v3"); !errors.Is(err, reward.ErrVoucherCompleted) {
		t.Fatalf("expected ErrVoucherCompleted, got %v", err)
	}

	var purchases int
	for _, ev := range emitter.events {
		if ev.EventType() == events.TypeRewardPurchased {
			purchases++
		}
	}
	if purchases != 2 {
		t.Fatalf("expected 2 purchase events, got %d", purchases)
	}
}

func TestBuyRewardInsufficientPoints(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	if err := f.engine.AddVoucher(owner, f.venue, reward.VoucherParams{ID: 1, Collection: id, Share: 5, Price: 50}); err != nil {
		t.Fatalf("add voucher: %v", err)
	}
	buyer := [20]byte{0x30}
	f.seedCustomer(t, buyer, 10)
	if _, err := f.engine.BuyReward(buyer, f.venue, id, ""); !errors.Is(err, reward.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestBuyRewardMintFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	if err := f.engine.AddVoucher(owner, f.venue, reward.VoucherParams{ID: 1, Collection: id, Share: 5, Price: 50}); err != nil {
		t.Fatalf("add voucher: %v", err)
	}
	buyer := [20]byte{0x30}
	f.seedCustomer(t, buyer, 100)
	f.assets.mintErr = fmt.Errorf("mint rejected")

	if _, err := f.engine.BuyReward(buyer, f.venue, id, ""); err == nil {
		t.Fatalf("expected mint failure")
	}
	voucher, _ := f.engine.Voucher(id)
	if voucher.ShareSold != 0 {
		t.Fatalf("share must not move on failed mint")
	}
	customerAddr := state.CustomerAddress(f.venue, buyer)
	customer := new(restaurant.Customer)
	if _, err := f.manager.KVGet(customerAddr[:], customer); err != nil {
		t.Fatalf("load customer: %v", err)
	}
	if customer.RewardPoints != 100 {
		t.Fatalf("points must not move on failed mint, got %d", customer.RewardPoints)
	}
}

func TestRemoveVoucher(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	if err := f.engine.RemoveVoucher(owner, f.venue, id); !errors.Is(err, reward.ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
	if err := f.engine.AddVoucher(owner, f.venue, reward.VoucherParams{ID: 1, Collection: id, Share: 2, Price: 5}); err != nil {
		t.Fatalf("add voucher: %v", err)
	}
	if err := f.engine.RemoveVoucher(owner, f.venue, id); err != nil {
		t.Fatalf("remove voucher: %v", err)
	}
	if _, ok := f.engine.Voucher(id); ok {
		t.Fatalf("expected voucher removed")
	}
}

func TestRedeemBurnsAsset(t *testing.T) {
	f := newFixture(t)
	id := f.newCollection(t)
	asset := [32]byte{0xA0, 0x01}
	if err := f.engine.Redeem([20]byte{0x30}, f.venue, id, asset, 9); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if len(f.assets.burned) != 1 || f.assets.burned[0] != asset {
		t.Fatalf("expected asset burned")
	}
	f.engine.SetGateView(lockedGates{})
	if err := f.engine.Redeem([20]byte{0x30}, f.venue, id, asset, 10); !errors.Is(err, nativecommon.ErrProtocolLocked) {
		t.Fatalf("expected ErrProtocolLocked, got %v", err)
	}
}
