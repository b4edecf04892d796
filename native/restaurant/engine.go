package restaurant

import (
	"strings"
	"time"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
	"hestia/native/protocol"
)

type engineState interface {
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
	KVDelete(key []byte) error
	TokenExists(symbol string) bool
}

// Engine manages restaurant catalogs: the venue record, employee enrollment,
// the stockroom inventory and the menu.
type Engine struct {
	st      engineState
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a catalog engine backed by the provided state manager.
func NewEngine(st engineState) *Engine {
	return &Engine{
		st:      st,
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

// SetNowFunc overrides the time source used for record timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	e.nowFn = now
}

func restaurantKey(addr [32]byte) []byte { return addr[:] }

func employeeKey(restaurant [32]byte, wallet [20]byte) []byte {
	addr := state.EmployeeAddress(restaurant, wallet)
	return addr[:]
}

func inventoryKey(restaurant [32]byte, sku uint64) []byte {
	addr := state.InventoryAddress(restaurant, sku)
	return addr[:]
}

func menuKey(restaurant [32]byte) []byte {
	addr := state.MenuAddress(restaurant)
	return addr[:]
}

func menuItemKey(restaurant [32]byte, sku uint64) []byte {
	addr := state.MenuItemAddress(restaurant, sku)
	return addr[:]
}

func ingredientListKey(menuItem [32]byte) []byte {
	addr := state.IngredientListAddress(menuItem)
	return addr[:]
}

func adminKey(admin [20]byte) []byte {
	addr := state.AdminAddress(admin)
	return addr[:]
}

// CreateRestaurant provisions a venue catalog and, when missing, the owner's
// administrator profile. The derived catalog address is returned.
func (e *Engine) CreateRestaurant(owner [20]byte, kindCode uint8, name, symbol, currency, url string) ([32]byte, error) {
	var zero [32]byte
	kind, ok := ParseKind(kindCode)
	if !ok {
		return zero, ErrInvalidObjectType
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return zero, ErrInvalidName
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !e.st.TokenExists(currency) {
		return zero, ErrCurrencyNotRegistered
	}
	addr := state.RestaurantAddress(owner)
	exists, err := e.st.KVGet(restaurantKey(addr), nil)
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, ErrRestaurantExists
	}

	rec := &Restaurant{
		Kind:     uint8(kind),
		Owner:    owner,
		Name:     name,
		Symbol:   strings.TrimSpace(symbol),
		Currency: currency,
		URL:      strings.TrimSpace(url),
		Bump:     state.Bump(addr),
	}
	if err := e.st.KVPut(restaurantKey(addr), rec); err != nil {
		return zero, err
	}

	hasProfile, err := e.st.KVGet(adminKey(owner), nil)
	if err != nil {
		return zero, err
	}
	if !hasProfile {
		profile := &protocol.AdminProfile{
			Identity:  owner,
			Username:  "owner",
			CreatedAt: nativecommon.Backdated(e.nowFn()),
			Bump:      state.Bump(state.AdminAddress(owner)),
		}
		if err := e.st.KVPut(adminKey(owner), profile); err != nil {
			return zero, err
		}
	}

	e.emit(events.RestaurantCreated{
		Restaurant: addr,
		Owner:      owner,
		Name:       rec.Name,
		Symbol:     rec.Symbol,
		Currency:   rec.Currency,
	})
	return addr, nil
}

// Restaurant retrieves a venue catalog by its derived address.
func (e *Engine) Restaurant(addr [32]byte) (*Restaurant, bool) {
	out := new(Restaurant)
	ok, err := e.st.KVGet(restaurantKey(addr), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

func (e *Engine) ownedRestaurant(caller [20]byte, addr [32]byte) (*Restaurant, error) {
	rec, ok := e.Restaurant(addr)
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	if rec.Owner != caller {
		return nil, ErrUnauthorized
	}
	return rec, nil
}

// AddEmployee enrolls a wallet with the given rank. Owner only.
func (e *Engine) AddEmployee(caller [20]byte, restaurant [32]byte, wallet [20]byte, rankCode uint8, username string) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	rank, ok := ParseRank(rankCode)
	if !ok {
		return ErrInvalidObjectType
	}
	exists, err := e.st.KVGet(employeeKey(restaurant, wallet), nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmployeeExists
	}
	rec := &Employee{
		Wallet:     wallet,
		Restaurant: restaurant,
		Rank:       uint8(rank),
		Username:   strings.TrimSpace(username),
		Bump:       state.Bump(state.EmployeeAddress(restaurant, wallet)),
	}
	if err := e.st.KVPut(employeeKey(restaurant, wallet), rec); err != nil {
		return err
	}
	e.emit(events.EmployeeAdded{
		Restaurant: restaurant,
		Wallet:     wallet,
		Rank:       rec.Rank,
		Username:   rec.Username,
	})
	return nil
}

// PromoteEmployee overwrites an employee's rank in place. Identity and
// restaurant stay immutable. Owner only.
func (e *Engine) PromoteEmployee(caller [20]byte, restaurant [32]byte, wallet [20]byte, rankCode uint8) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	rank, ok := ParseRank(rankCode)
	if !ok {
		return ErrInvalidObjectType
	}
	rec := new(Employee)
	found, err := e.st.KVGet(employeeKey(restaurant, wallet), rec)
	if err != nil {
		return err
	}
	if !found {
		return ErrEmployeeNotFound
	}
	rec.Rank = uint8(rank)
	if err := e.st.KVPut(employeeKey(restaurant, wallet), rec); err != nil {
		return err
	}
	e.emit(events.EmployeePromoted{Restaurant: restaurant, Wallet: wallet, Rank: rec.Rank})
	return nil
}

// RemoveEmployee closes an employee record. The stored back-reference must
// match the declared restaurant. Owner only, refund to owner.
func (e *Engine) RemoveEmployee(caller [20]byte, restaurant [32]byte, wallet [20]byte, declared [32]byte) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	rec := new(Employee)
	found, err := e.st.KVGet(employeeKey(restaurant, wallet), rec)
	if err != nil {
		return err
	}
	if !found {
		return ErrEmployeeNotFound
	}
	if rec.Restaurant != declared {
		return ErrEmployeeMismatch
	}
	if err := e.st.KVDelete(employeeKey(restaurant, wallet)); err != nil {
		return err
	}
	e.emit(events.EmployeeRemoved{Restaurant: restaurant, Wallet: wallet, Refund: caller})
	return nil
}

// Employee retrieves an employee record.
func (e *Engine) Employee(restaurant [32]byte, wallet [20]byte) (*Employee, bool) {
	out := new(Employee)
	ok, err := e.st.KVGet(employeeKey(restaurant, wallet), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// InventoryParams carries the upsert arguments for a stockroom item.
type InventoryParams struct {
	Sku         uint64
	Category    uint8
	Name        string
	Price       uint64
	Stock       uint64
	Initialized bool
}

// UpsertInventory creates a stockroom item or updates its price and stock.
// The Initialized flag selects the path: false creates, true updates. Owner
// only.
func (e *Engine) UpsertInventory(caller [20]byte, restaurant [32]byte, params InventoryParams) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	key := inventoryKey(restaurant, params.Sku)
	if params.Initialized {
		rec := new(InventoryItem)
		found, err := e.st.KVGet(key, rec)
		if err != nil {
			return err
		}
		if !found {
			return ErrInventoryNotFound
		}
		rec.Price = params.Price
		rec.Stock = params.Stock
		if err := e.st.KVPut(key, rec); err != nil {
			return err
		}
		e.emit(events.InventoryUpdated{
			Restaurant: restaurant,
			Sku:        params.Sku,
			Price:      rec.Price,
			Stock:      rec.Stock,
		})
		return nil
	}

	category, ok := ParseInventoryCategory(params.Category)
	if !ok {
		return ErrInvalidObjectType
	}
	exists, err := e.st.KVGet(key, nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrInventoryExists
	}
	rec := &InventoryItem{
		Sku:       params.Sku,
		Category:  uint8(category),
		Name:      strings.TrimSpace(params.Name),
		Price:     params.Price,
		Stock:     params.Stock,
		LastOrder: nativecommon.Backdated(e.nowFn()),
		Bump:      state.Bump(state.InventoryAddress(restaurant, params.Sku)),
	}
	if err := e.st.KVPut(key, rec); err != nil {
		return err
	}
	e.emit(events.InventoryUpdated{
		Restaurant: restaurant,
		Sku:        params.Sku,
		Price:      rec.Price,
		Stock:      rec.Stock,
		Created:    true,
	})
	return nil
}

// RemoveInventory closes a stockroom item, refund to owner. Owner only.
func (e *Engine) RemoveInventory(caller [20]byte, restaurant [32]byte, sku uint64) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	exists, err := e.st.KVGet(inventoryKey(restaurant, sku), nil)
	if err != nil {
		return err
	}
	if !exists {
		return ErrInventoryNotFound
	}
	if err := e.st.KVDelete(inventoryKey(restaurant, sku)); err != nil {
		return err
	}
	e.emit(events.InventoryRemoved{Restaurant: restaurant, Sku: sku, Refund: caller})
	return nil
}

// Inventory retrieves a stockroom item.
func (e *Engine) Inventory(restaurant [32]byte, sku uint64) (*InventoryItem, bool) {
	out := new(InventoryItem)
	ok, err := e.st.KVGet(inventoryKey(restaurant, sku), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// MenuItemParams carries the upsert arguments for a menu item and its recipe.
type MenuItemParams struct {
	Sku         uint64
	Category    uint8
	Name        string
	Price       uint64
	Description string
	Active      bool
	Ingredients []Ingredient
}

// UpsertMenuItem writes a menu item and its ingredient list, lazily creating
// the restaurant's menu root on first use. Updates overwrite the mutable
// fields and replace the recipe wholesale. Owner only.
func (e *Engine) UpsertMenuItem(caller [20]byte, restaurant [32]byte, params MenuItemParams) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	category, ok := ParseMenuCategory(params.Category)
	if !ok {
		return ErrInvalidObjectType
	}

	menuExists, err := e.st.KVGet(menuKey(restaurant), nil)
	if err != nil {
		return err
	}
	if !menuExists {
		menu := &Menu{Restaurant: restaurant, Bump: state.Bump(state.MenuAddress(restaurant))}
		if err := e.st.KVPut(menuKey(restaurant), menu); err != nil {
			return err
		}
	}

	itemAddr := state.MenuItemAddress(restaurant, params.Sku)
	rec := &MenuItem{
		Sku:         params.Sku,
		Category:    uint8(category),
		Name:        strings.TrimSpace(params.Name),
		Price:       params.Price,
		Description: strings.TrimSpace(params.Description),
		Active:      params.Active,
		Bump:        state.Bump(itemAddr),
	}
	if err := e.st.KVPut(menuItemKey(restaurant, params.Sku), rec); err != nil {
		return err
	}

	list := &IngredientList{
		MenuItem:    itemAddr,
		Ingredients: append([]Ingredient(nil), params.Ingredients...),
		Bump:        state.Bump(state.IngredientListAddress(itemAddr)),
	}
	if err := e.st.KVPut(ingredientListKey(itemAddr), list); err != nil {
		return err
	}

	e.emit(events.MenuItemUpdated{
		Restaurant: restaurant,
		Sku:        params.Sku,
		Price:      rec.Price,
		Active:     rec.Active,
	})
	return nil
}

// ToggleMenuItem flips a menu item's availability. The supplied sku must
// match the stored record. Owner only.
func (e *Engine) ToggleMenuItem(caller [20]byte, restaurant [32]byte, sku uint64) error {
	if _, err := e.ownedRestaurant(caller, restaurant); err != nil {
		return err
	}
	rec := new(MenuItem)
	found, err := e.st.KVGet(menuItemKey(restaurant, sku), rec)
	if err != nil {
		return err
	}
	if !found {
		return ErrMenuItemNotFound
	}
	if rec.Sku != sku {
		return ErrInvalidSku
	}
	rec.Active = !rec.Active
	if err := e.st.KVPut(menuItemKey(restaurant, sku), rec); err != nil {
		return err
	}
	e.emit(events.MenuItemToggled{Restaurant: restaurant, Sku: sku, Active: rec.Active})
	return nil
}

// MenuItem retrieves an orderable product.
func (e *Engine) MenuItem(restaurant [32]byte, sku uint64) (*MenuItem, bool) {
	out := new(MenuItem)
	ok, err := e.st.KVGet(menuItemKey(restaurant, sku), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// Ingredients retrieves a menu item's recipe.
func (e *Engine) Ingredients(restaurant [32]byte, sku uint64) (*IngredientList, bool) {
	itemAddr := state.MenuItemAddress(restaurant, sku)
	out := new(IngredientList)
	ok, err := e.st.KVGet(ingredientListKey(itemAddr), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// Menu retrieves the menu root, reporting whether it was initialized.
func (e *Engine) Menu(restaurant [32]byte) (*Menu, bool) {
	out := new(Menu)
	ok, err := e.st.KVGet(menuKey(restaurant), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// Customer retrieves a customer record.
func (e *Engine) Customer(restaurant [32]byte, wallet [20]byte) (*Customer, bool) {
	addr := state.CustomerAddress(restaurant, wallet)
	out := new(Customer)
	ok, err := e.st.KVGet(addr[:], out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

func (e *Engine) emit(event events.Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}
