package protocol

import "errors"

var (
	ErrUnauthorized             = errors.New("protocol: caller not authorized")
	ErrAlreadyInitialized       = errors.New("protocol: already initialized")
	ErrNotInitialized           = errors.New("protocol: not initialized")
	ErrAdminExists              = errors.New("protocol: admin profile exists")
	ErrAdminNotFound            = errors.New("protocol: admin profile not found")
	ErrCannotRemovePrimaryAdmin = errors.New("protocol: cannot remove primary admin")
	ErrInvalidUsername          = errors.New("protocol: username must not be empty")
)
