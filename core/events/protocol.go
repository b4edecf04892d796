package events

import "hestia/core/types"

const (
	// TypeProtocolInitialized is emitted when the protocol and manager
	// singletons are first created.
	TypeProtocolInitialized = "protocol.initialized"
	// TypeProtocolToggled is emitted when the validation gates flip between
	// fully approved and fully rejected.
	TypeProtocolToggled = "protocol.toggled"
	// TypeAdminAdded is emitted when a new administrator profile is created.
	TypeAdminAdded = "protocol.admin.added"
	// TypeAdminRemoved is emitted when an administrator profile is closed.
	TypeAdminRemoved = "protocol.admin.removed"
)

// ProtocolInitialized captures the genesis of the protocol singletons.
type ProtocolInitialized struct {
	Protocol [32]byte
	Manager  [32]byte
	Caller   [20]byte
}

// EventType implements the Event interface.
func (ProtocolInitialized) EventType() string { return TypeProtocolInitialized }

// ProtocolToggled captures a validation gate flip.
type ProtocolToggled struct {
	Caller   [20]byte
	Approved bool
}

// EventType implements the Event interface.
func (ProtocolToggled) EventType() string { return TypeProtocolToggled }

// Event converts the toggle to the generic event payload.
func (e ProtocolToggled) Event() *types.Event {
	return &types.Event{
		Type: TypeProtocolToggled,
		Attributes: map[string]string{
			"caller":   hexAddr(e.Caller),
			"approved": strconvBool(e.Approved),
		},
	}
}

// AdminAdded captures a new administrator profile.
type AdminAdded struct {
	Admin    [20]byte
	Username string
	Caller   [20]byte
}

// EventType implements the Event interface.
func (AdminAdded) EventType() string { return TypeAdminAdded }

// AdminRemoved captures the closure of an administrator profile. Refund names
// the account the record's deposit is returned to.
type AdminRemoved struct {
	Admin  [20]byte
	Caller [20]byte
	Refund [20]byte
}

// EventType implements the Event interface.
func (AdminRemoved) EventType() string { return TypeAdminRemoved }

func strconvBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
