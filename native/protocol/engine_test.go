package protocol_test

import (
	"errors"
	"testing"

	"hestia/core/events"
	"hestia/core/state"
	nativecommon "hestia/native/common"
	"hestia/native/protocol"
	"hestia/storage"
	statetrie "hestia/storage/trie"
)

type capturingEmitter struct {
	events []events.Event
}

func (c *capturingEmitter) Emit(e events.Event) {
	c.events = append(c.events, e)
}

func newTestEngine(t *testing.T) *protocol.Engine {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(func() { db.Close() })
	tr, err := statetrie.NewTrie(db, nil)
	if err != nil {
		t.Fatalf("create trie: %v", err)
	}
	engine := protocol.NewEngine(state.NewManager(tr))
	engine.SetNowFunc(func() int64 { return 1_700_000_000 })
	return engine
}

func TestInitCreatesSingletonsApproved(t *testing.T) {
	engine := newTestEngine(t)
	emitter := &capturingEmitter{}
	engine.SetEmitter(emitter)

	if err := engine.Init(protocol.RootAdmin); err != nil {
		t.Fatalf("init: %v", err)
	}
	gates, ok := engine.Gates()
	if !ok {
		t.Fatalf("expected protocol record")
	}
	if !gates.AllApproved() {
		t.Fatalf("expected all gates approved at genesis")
	}
	if len(emitter.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(emitter.events))
	}
	if emitter.events[0].EventType() != events.TypeProtocolInitialized {
		t.Fatalf("unexpected event type %q", emitter.events[0].EventType())
	}
}

func TestInitRejectsNonRootAndReinit(t *testing.T) {
	engine := newTestEngine(t)
	var stranger [20]byte
	stranger[0] = 0x01
	if err := engine.Init(stranger); !errors.Is(err, protocol.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := engine.Init(protocol.RootAdmin); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := engine.Init(protocol.RootAdmin); !errors.Is(err, protocol.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestToggleFlipsAllGates(t *testing.T) {
	engine := newTestEngine(t)
	if err := engine.Init(protocol.RootAdmin); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := engine.Toggle(protocol.RootAdmin); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if engine.GateApproved(nativecommon.GateBurn) {
		t.Fatalf("expected burn gate rejected after toggle")
	}
	if err := nativecommon.Guard(engine, nativecommon.GateCreate); !errors.Is(err, nativecommon.ErrProtocolLocked) {
		t.Fatalf("expected ErrProtocolLocked, got %v", err)
	}
	if err := engine.Toggle(protocol.RootAdmin); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	gates, _ := engine.Gates()
	if !gates.AllApproved() {
		t.Fatalf("expected gates approved after second toggle")
	}
}

func TestToggleRequiresInit(t *testing.T) {
	engine := newTestEngine(t)
	if err := engine.Toggle(protocol.RootAdmin); !errors.Is(err, protocol.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestAddAdminBackdatesCreation(t *testing.T) {
	engine := newTestEngine(t)
	var admin [20]byte
	admin[5] = 0xAB

	if err := engine.AddAdmin(protocol.RootAdmin, admin, "ops"); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	profile, ok := engine.Admin(admin)
	if !ok {
		t.Fatalf("expected admin profile")
	}
	want := uint64(1_700_000_000 - 20*60*60)
	if profile.CreatedAt != want {
		t.Fatalf("expected backdated creation %d, got %d", want, profile.CreatedAt)
	}
	if err := engine.AddAdmin(protocol.RootAdmin, admin, "ops"); !errors.Is(err, protocol.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
}

func TestRemoveAdmin(t *testing.T) {
	engine := newTestEngine(t)
	var admin [20]byte
	admin[5] = 0xAB

	if err := engine.RemoveAdmin(protocol.RootAdmin, protocol.RootAdmin); !errors.Is(err, protocol.ErrCannotRemovePrimaryAdmin) {
		t.Fatalf("expected ErrCannotRemovePrimaryAdmin, got %v", err)
	}
	if err := engine.RemoveAdmin(protocol.RootAdmin, admin); !errors.Is(err, protocol.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	if err := engine.AddAdmin(protocol.RootAdmin, admin, "ops"); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if err := engine.RemoveAdmin(protocol.RootAdmin, admin); err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	if _, ok := engine.Admin(admin); ok {
		t.Fatalf("expected profile removed")
	}
}
