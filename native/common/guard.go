package common

import "errors"

var ErrProtocolLocked = errors.New("protocol validation locked")

// Lifecycle gates enforced on reward asset operations.
const (
	GateCreate   = "create"
	GateTransfer = "transfer"
	GateBurn     = "burn"
	GateUpdate   = "update"
)

// GateView reports whether a named lifecycle gate is currently approved on
// the protocol singleton.
type GateView interface {
	GateApproved(gate string) bool
}

// Guard fails with ErrProtocolLocked when the named gate is rejected. A nil
// view or empty gate name skips the check.
func Guard(v GateView, gate string) error {
	if v == nil || gate == "" {
		return nil
	}
	if !v.GateApproved(gate) {
		return ErrProtocolLocked
	}
	return nil
}
