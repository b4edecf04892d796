package protocol

import (
	"strings"
	"time"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
)

type engineState interface {
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
	KVDelete(key []byte) error
}

// Engine manages the protocol and manager singletons and the administrator
// registry.
type Engine struct {
	st      engineState
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a protocol engine backed by the provided state manager.
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

// SetNowFunc overrides the time source used for profile timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	e.nowFn = now
}

func protocolKey() []byte {
	addr := state.ProtocolAddress()
	return addr[:]
}

func managerKey() []byte {
	addr := state.ManagerAddress()
	return addr[:]
}

func adminKey(admin [20]byte) []byte {
	addr := state.AdminAddress(admin)
	return addr[:]
}

// Init creates the protocol and manager singletons with every lifecycle gate
// approved. Only the root administrator may initialize, and re-initialization
// fails.
func (e *Engine) Init(caller [20]byte) error {
	if caller != RootAdmin {
		return ErrUnauthorized
	}
	exists, err := e.st.KVGet(protocolKey(), nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInitialized
	}

	proto := &Protocol{Bump: state.Bump(state.ProtocolAddress())}
	proto.setAll(ValidationApproved)
	if err := e.st.KVPut(protocolKey(), proto); err != nil {
		return err
	}
	mgr := &Manager{Bump: state.Bump(state.ManagerAddress())}
	if err := e.st.KVPut(managerKey(), mgr); err != nil {
		return err
	}
	e.emit(events.ProtocolInitialized{
		Protocol: state.ProtocolAddress(),
		Manager:  state.ManagerAddress(),
		Caller:   caller,
	})
	return nil
}

// Toggle flips the circuit breaker: when every gate is approved they all
// become rejected, otherwise they all become approved.
func (e *Engine) Toggle(caller [20]byte) error {
	if caller != RootAdmin {
		return ErrUnauthorized
	}
	proto, found, err := e.getProtocol()
	if err != nil {
		return err
	}
	if !found {
		return ErrNotInitialized
	}
	approved := !proto.AllApproved()
	if approved {
		proto.setAll(ValidationApproved)
	} else {
		proto.setAll(ValidationRejected)
	}
	if err := e.st.KVPut(protocolKey(), proto); err != nil {
		return err
	}
	e.emit(events.ProtocolToggled{Caller: caller, Approved: approved})
	return nil
}

// AddAdmin creates an administrator profile. The creation timestamp is
// backdated so the activation cooldown starts already elapsed.
func (e *Engine) AddAdmin(caller [20]byte, admin [20]byte, username string) error {
	if caller != RootAdmin {
		return ErrUnauthorized
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidUsername
	}
	exists, err := e.st.KVGet(adminKey(admin), nil)
	if err != nil {
		return err
	}
	if exists {
		return ErrAdminExists
	}
	profile := &AdminProfile{
		Identity:  admin,
		Username:  username,
		CreatedAt: nativecommon.Backdated(e.nowFn()),
		Bump:      state.Bump(state.AdminAddress(admin)),
	}
	if err := e.st.KVPut(adminKey(admin), profile); err != nil {
		return err
	}
	e.emit(events.AdminAdded{Admin: admin, Username: username, Caller: caller})
	return nil
}

// RemoveAdmin closes an administrator profile, refunding its deposit to the
// caller. The primary admin can never be removed.
func (e *Engine) RemoveAdmin(caller [20]byte, admin [20]byte) error {
	if caller != RootAdmin {
		return ErrUnauthorized
	}
	if admin == RootAdmin {
		return ErrCannotRemovePrimaryAdmin
	}
	exists, err := e.st.KVGet(adminKey(admin), nil)
	if err != nil {
		return err
	}
	if !exists {
		return ErrAdminNotFound
	}
	if err := e.st.KVDelete(adminKey(admin)); err != nil {
		return err
	}
	e.emit(events.AdminRemoved{Admin: admin, Caller: caller, Refund: caller})
	return nil
}

// Admin retrieves an administrator profile.
func (e *Engine) Admin(admin [20]byte) (*AdminProfile, bool) {
	out := new(AdminProfile)
	ok, err := e.st.KVGet(adminKey(admin), out)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

// Gates returns the current protocol gate record.
func (e *Engine) Gates() (*Protocol, bool) {
	proto, found, err := e.getProtocol()
	if err != nil || !found {
		return nil, false
	}
	return proto, true
}

// GateApproved implements common.GateView. An uninitialized protocol reports
// every gate as rejected.
func (e *Engine) GateApproved(gate string) bool {
	proto, found, err := e.getProtocol()
	if err != nil || !found {
		return false
	}
	switch gate {
	case nativecommon.GateCreate:
		return proto.ValidateCreate == uint8(ValidationApproved)
	case nativecommon.GateTransfer:
		return proto.ValidateTransfer == uint8(ValidationApproved)
	case nativecommon.GateBurn:
		return proto.ValidateBurn == uint8(ValidationApproved)
	case nativecommon.GateUpdate:
		return proto.ValidateUpdate == uint8(ValidationApproved)
	}
	return false
}

func (e *Engine) getProtocol() (*Protocol, bool, error) {
	out := new(Protocol)
	found, err := e.st.KVGet(protocolKey(), out)
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (e *Engine) emit(event events.Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(event)
}
