package state

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Record tags anchoring each entity class in the derivation namespace.
const (
	TagProtocol       = "protocol"
	TagManager        = "manager"
	TagAdmin          = "admin"
	TagRestaurant     = "restaurant"
	TagEmployee       = "employee"
	TagInventory      = "inventory"
	TagMenu           = "menu"
	TagMenuItem       = "menu_item"
	TagIngredientList = "ingredient_list"
	TagCustomer       = "customer"
	TagOrder          = "order"
	TagVoucher        = "voucher"
	TagReward         = "reward"
	TagAsset          = "asset"
)

// DeriveAddress hashes a tag and its path components into the record's 32-byte
// storage address. Components are joined with a zero separator so distinct
// paths can never collide by concatenation. Identical inputs always derive the
// identical address.
func DeriveAddress(tag string, parts ...[]byte) [32]byte {
	buf := make([]byte, 0, len(tag)+len(parts)*33)
	buf = append(buf, tag...)
	for _, part := range parts {
		buf = append(buf, 0x00)
		buf = append(buf, part...)
	}
	var addr [32]byte
	copy(addr[:], ethcrypto.Keccak256(buf))
	return addr
}

// Bump returns the record's bump disambiguator, the final byte of its derived
// address.
func Bump(addr [32]byte) uint8 {
	return addr[31]
}

// Uint64LE encodes a numeric identifier (order id, sku) as the little-endian
// component used in address derivation.
func Uint64LE(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// ProtocolAddress derives the protocol singleton address.
func ProtocolAddress() [32]byte {
	return DeriveAddress(TagProtocol)
}

// ManagerAddress derives the manager singleton address. The manager acts as
// the update, mint and burn authority for all reward collection assets.
func ManagerAddress() [32]byte {
	return DeriveAddress(TagManager)
}

// AdminAddress derives an administrator profile address.
func AdminAddress(admin [20]byte) [32]byte {
	return DeriveAddress(TagAdmin, admin[:])
}

// RestaurantAddress derives a restaurant catalog address from its owner.
func RestaurantAddress(owner [20]byte) [32]byte {
	return DeriveAddress(TagRestaurant, owner[:])
}

// EmployeeAddress derives an employee record address.
func EmployeeAddress(restaurant [32]byte, wallet [20]byte) [32]byte {
	return DeriveAddress(TagEmployee, restaurant[:], wallet[:])
}

// InventoryAddress derives an inventory item address.
func InventoryAddress(restaurant [32]byte, sku uint64) [32]byte {
	return DeriveAddress(TagInventory, restaurant[:], Uint64LE(sku))
}

// MenuAddress derives a restaurant's menu record address.
func MenuAddress(restaurant [32]byte) [32]byte {
	return DeriveAddress(TagMenu, restaurant[:])
}

// MenuItemAddress derives a menu item address.
func MenuItemAddress(restaurant [32]byte, sku uint64) [32]byte {
	return DeriveAddress(TagMenuItem, restaurant[:], Uint64LE(sku))
}

// IngredientListAddress derives the ingredient list side record address for a
// menu item.
func IngredientListAddress(menuItem [32]byte) [32]byte {
	return DeriveAddress(TagIngredientList, menuItem[:])
}

// CustomerAddress derives a customer record address.
func CustomerAddress(restaurant [32]byte, wallet [20]byte) [32]byte {
	return DeriveAddress(TagCustomer, restaurant[:], wallet[:])
}

// OrderAddress derives an order record address.
func OrderAddress(restaurant [32]byte, orderID uint64) [32]byte {
	return DeriveAddress(TagOrder, restaurant[:], Uint64LE(orderID))
}

// RewardCollectionAddress derives the deterministic identifier of a reward
// collection asset from its sku and restaurant.
func RewardCollectionAddress(restaurant [32]byte, sku string) [32]byte {
	return DeriveAddress(TagReward, []byte(sku), restaurant[:])
}

// VoucherAddress derives a reward voucher record address from its collection.
func VoucherAddress(collection [32]byte) [32]byte {
	return DeriveAddress(TagVoucher, collection[:])
}

// AssetAddress derives the address of the nth asset minted under a collection.
func AssetAddress(collection [32]byte, sequence uint64) [32]byte {
	return DeriveAddress(TagAsset, collection[:], Uint64LE(sequence))
}
