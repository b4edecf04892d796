package restaurant

import "errors"

var (
	ErrUnauthorized          = errors.New("restaurant: caller not authorized")
	ErrInvalidObjectType     = errors.New("restaurant: invalid object type code")
	ErrInvalidName           = errors.New("restaurant: name must not be empty")
	ErrCurrencyNotRegistered = errors.New("restaurant: settlement currency not registered")
	ErrRestaurantExists      = errors.New("restaurant: already exists for owner")
	ErrRestaurantNotFound    = errors.New("restaurant: not found")
	ErrEmployeeExists        = errors.New("restaurant: employee already enrolled")
	ErrEmployeeNotFound      = errors.New("restaurant: employee not found")
	ErrEmployeeMismatch      = errors.New("restaurant: employee does not belong to restaurant")
	ErrInventoryExists       = errors.New("restaurant: inventory item already initialized")
	ErrInventoryNotFound     = errors.New("restaurant: inventory item not found")
	ErrMenuItemNotFound      = errors.New("restaurant: menu item not found")
	ErrInvalidSku            = errors.New("restaurant: sku mismatch")
	ErrCustomerNotFound      = errors.New("restaurant: customer not found")
)
