package state_test

import (
	"testing"

	"hestia/core/state"
)

func TestDeriveAddressDeterministic(t *testing.T) {
	owner := [20]byte{0x01}
	first := state.RestaurantAddress(owner)
	second := state.RestaurantAddress(owner)
	if first != second {
		t.Fatalf("derivation not deterministic: %x vs %x", first, second)
	}
	if state.Bump(first) != first[31] {
		t.Fatalf("bump must be the final address byte")
	}
}

func TestDeriveAddressSeparatesComponents(t *testing.T) {
	// "ab" + "c" and "a" + "bc" must not collide through concatenation.
	left := state.DeriveAddress("t", []byte("ab"), []byte("c"))
	right := state.DeriveAddress("t", []byte("a"), []byte("bc"))
	if left == right {
		t.Fatalf("component boundary lost in derivation")
	}
}

func TestDeriveAddressDistinctPerEntity(t *testing.T) {
	owner := [20]byte{0x01}
	wallet := [20]byte{0x02}
	venue := state.RestaurantAddress(owner)

	seen := map[[32]byte]string{}
	record := func(name string, addr [32]byte) {
		if prev, ok := seen[addr]; ok {
			t.Fatalf("%s collides with %s", name, prev)
		}
		seen[addr] = name
	}

	record("protocol", state.ProtocolAddress())
	record("manager", state.ManagerAddress())
	record("admin", state.AdminAddress(owner))
	record("restaurant", venue)
	record("employee", state.EmployeeAddress(venue, wallet))
	record("inventory", state.InventoryAddress(venue, 7))
	record("menu", state.MenuAddress(venue))
	record("menu item", state.MenuItemAddress(venue, 7))
	record("ingredient list", state.IngredientListAddress(state.MenuItemAddress(venue, 7)))
	record("customer", state.CustomerAddress(venue, wallet))
	record("order", state.OrderAddress(venue, 7))
	record("reward collection", state.RewardCollectionAddress(venue, "7"))
	record("voucher", state.VoucherAddress(state.RewardCollectionAddress(venue, "7")))
}

func TestNumericComponentsDiffer(t *testing.T) {
	venue := state.RestaurantAddress([20]byte{0x01})
	if state.OrderAddress(venue, 1) == state.OrderAddress(venue, 2) {
		t.Fatalf("order ids must derive distinct addresses")
	}
	if state.InventoryAddress(venue, 1) == state.MenuItemAddress(venue, 1) {
		t.Fatalf("inventory and menu item namespaces must not overlap")
	}
}
