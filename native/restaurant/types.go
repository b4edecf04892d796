package restaurant

// Kind classifies a venue.
type Kind uint8

const (
	KindFoodtruck Kind = iota
	KindCafe
	KindRestaurant
)

// ParseKind validates a venue type code.
func ParseKind(code uint8) (Kind, bool) {
	if code > uint8(KindRestaurant) {
		return 0, false
	}
	return Kind(code), true
}

// Restaurant is a venue catalog root. The owner is immutable and authorizes
// every catalog mutation.
type Restaurant struct {
	Kind          uint8
	Owner         [20]byte
	Name          string
	Symbol        string
	Currency      string
	URL           string
	CustomerCount uint64
	Bump          uint8
}

// Rank orders employees by privilege. Order status updates require a rank
// strictly above TeamMember.
type Rank uint8

const (
	RankTeamMember Rank = iota
	RankTeamLeader
	RankManager
	RankDirector
)

// ParseRank validates an employee rank code.
func ParseRank(code uint8) (Rank, bool) {
	if code > uint8(RankDirector) {
		return 0, false
	}
	return Rank(code), true
}

// Employee is enrolled per restaurant. Restaurant carries the back-reference
// declared at enrollment and is checked on removal.
type Employee struct {
	Wallet     [20]byte
	Restaurant [32]byte
	Rank       uint8
	Username   string
	Bump       uint8
}

// InventoryCategory classifies stockroom goods.
type InventoryCategory uint8

const (
	InventoryPaperGoods InventoryCategory = iota
	InventoryCleaningSupplies
	InventoryFood
	InventoryBeverages
	InventoryAlcohol
	InventoryEquipment
	InventoryUniform
	InventoryMarketing
	InventoryOther
)

// ParseInventoryCategory validates an inventory category code.
func ParseInventoryCategory(code uint8) (InventoryCategory, bool) {
	if code > uint8(InventoryOther) {
		return 0, false
	}
	return InventoryCategory(code), true
}

// InventoryItem tracks a stocked product. Price and stock are the only fields
// touched on update.
type InventoryItem struct {
	Sku       uint64
	Category  uint8
	Name      string
	Price     uint64
	Stock     uint64
	LastOrder uint64
	Bump      uint8
}

// Menu is the lazily created menu root for a restaurant.
type Menu struct {
	Restaurant [32]byte
	Bump       uint8
}

// MenuCategory classifies menu items.
type MenuCategory uint8

const (
	MenuCombo MenuCategory = iota
	MenuSide
	MenuEntree
	MenuDessert
	MenuBeverage
	MenuAlcohol
	MenuOther
)

// ParseMenuCategory validates a menu category code.
func ParseMenuCategory(code uint8) (MenuCategory, bool) {
	if code > uint8(MenuOther) {
		return 0, false
	}
	return MenuCategory(code), true
}

// MenuItem is an orderable product.
type MenuItem struct {
	Sku         uint64
	Category    uint8
	Name        string
	Price       uint64
	Description string
	Active      bool
	Bump        uint8
}

// Ingredient links a menu item to the inventory record it consumes.
type Ingredient struct {
	Inventory [32]byte
	Quantity  uint64
}

// IngredientList is the side record holding a menu item's recipe. Updates
// replace the list wholesale.
type IngredientList struct {
	MenuItem    [32]byte
	Ingredients []Ingredient
	Bump        uint8
}

// Customer tracks a wallet's standing with one restaurant.
type Customer struct {
	Wallet       [20]byte
	Restaurant   [32]byte
	Name         string
	MemberSince  uint64
	TotalOrders  uint64
	RewardPoints uint64
	Bump         uint8
}
