package reward_test

import (
	"errors"
	"testing"

	"hestia/core/state"
	"hestia/native/reward"
	"hestia/storage"
	statetrie "hestia/storage/trie"
)

func newRegistry(t *testing.T) *reward.Registry {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(func() { db.Close() })
	tr, err := statetrie.NewTrie(db, nil)
	if err != nil {
		t.Fatalf("create trie: %v", err)
	}
	return reward.NewRegistry(state.NewManager(tr))
}

func managerAuthority() reward.Authority {
	addr := state.ManagerAddress()
	return reward.Authority{Address: addr, Bump: state.Bump(addr)}
}

func collectionSpec() reward.CollectionSpec {
	venue := state.RestaurantAddress([20]byte{0x01})
	return reward.CollectionSpec{
		Address:   state.RewardCollectionAddress(venue, "42"),
		Name:      "Mezze Pass",
		URI:       "ipfs://mezze",
		Authority: managerAuthority(),
	}
}

func TestRegistryCreateCollection(t *testing.T) {
	r := newRegistry(t)
	spec := collectionSpec()

	id, err := r.CreateCollection(spec)
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if id != spec.Address {
		t.Fatalf("expected collection id %x, got %x", spec.Address, id)
	}
	if _, err := r.CreateCollection(spec); err == nil {
		t.Fatalf("expected duplicate collection rejection")
	}
	authority, ok := r.CollectionAuthority(id)
	if !ok || authority != state.ManagerAddress() {
		t.Fatalf("unexpected authority %x ok=%v", authority, ok)
	}

	spec.Address = state.RewardCollectionAddress(state.RestaurantAddress([20]byte{0x02}), "42")
	spec.Authority = reward.Authority{Address: [32]byte{0xFF}}
	if _, err := r.CreateCollection(spec); !errors.Is(err, reward.ErrInvalidRewardAuthority) {
		t.Fatalf("expected ErrInvalidRewardAuthority, got %v", err)
	}
}

func TestRegistryMintAndBurn(t *testing.T) {
	r := newRegistry(t)
	spec := collectionSpec()
	if _, err := r.CreateCollection(spec); err != nil {
		t.Fatalf("create collection: %v", err)
	}

	owner := [20]byte{0x03}
	first, err := r.MintAsset(reward.AssetSpec{
		Collection: spec.Address,
		VoucherID:  7,
		URI:        "ipfs://asset",
		Owner:      owner,
		Authority:  managerAuthority(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	second, err := r.MintAsset(reward.AssetSpec{
		Collection: spec.Address,
		VoucherID:  7,
		Owner:      owner,
		Authority:  managerAuthority(),
	})
	if err != nil {
		t.Fatalf("second mint: %v", err)
	}
	if first == second {
		t.Fatalf("sequential mints must derive distinct addresses")
	}

	asset, ok := r.Asset(first)
	if !ok {
		t.Fatalf("expected stored asset record")
	}
	if asset.Owner != owner || asset.Name != "Mezze Pass #7" {
		t.Fatalf("unexpected asset record %+v", asset)
	}

	if err := r.BurnAsset(first, spec.Address, reward.Authority{Address: [32]byte{0xFF}}); !errors.Is(err, reward.ErrInvalidRewardAuthority) {
		t.Fatalf("expected ErrInvalidRewardAuthority, got %v", err)
	}
	if err := r.BurnAsset(first, spec.Address, managerAuthority()); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if _, ok := r.Asset(first); ok {
		t.Fatalf("expected burned asset removed")
	}
	if err := r.BurnAsset(first, spec.Address, managerAuthority()); err == nil {
		t.Fatalf("expected missing asset rejection")
	}
}

func TestRegistryMintRequiresCollection(t *testing.T) {
	r := newRegistry(t)
	_, err := r.MintAsset(reward.AssetSpec{Collection: [32]byte{0xAA}, Authority: managerAuthority()})
	if err == nil {
		t.Fatalf("expected missing collection rejection")
	}
}
