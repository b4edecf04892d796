package reward

import "errors"

var (
	ErrUnauthorized           = errors.New("reward: caller not authorized")
	ErrRestaurantNotFound     = errors.New("reward: restaurant not found")
	ErrInvalidRewardAuthority = errors.New("reward: collection authority is not the manager")
	ErrInvalidCategory        = errors.New("reward: invalid category code")
	ErrInvalidShare           = errors.New("reward: share must be positive")
	ErrVoucherExists          = errors.New("reward: voucher already registered")
	ErrVoucherNotFound        = errors.New("reward: voucher not found")
	ErrVoucherCompleted       = errors.New("reward: voucher sold out")
	ErrCustomerNotFound       = errors.New("reward: customer not found")
	ErrInsufficientPoints     = errors.New("reward: insufficient reward points")
)
