package order

import "errors"

var (
	ErrUnauthorized               = errors.New("order: caller not authorized")
	ErrRestaurantNotFound         = errors.New("order: restaurant not found")
	ErrOrderNotFound              = errors.New("order: not found")
	ErrMenuItemNotFound           = errors.New("order: redeemed menu item not found")
	ErrVoucherNotFound            = errors.New("order: reward voucher not found")
	ErrInvalidStatusType          = errors.New("order: invalid status code")
	ErrAlreadyCancelled           = errors.New("order: already cancelled")
	ErrInvalidInstruction         = errors.New("order: malformed payment instruction")
	ErrSignatureAuthorityMismatch = errors.New("order: payment signed by unknown authority")
	ErrPriceMismatch              = errors.New("order: paid amount exceeds balance due")
	ErrRewardsUnavailable         = errors.New("order: reward engine not configured")
)
