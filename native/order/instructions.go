package order

import "github.com/ethereum/go-ethereum/common"

// Ed25519VerifierID identifies the signature-verification program whose
// output path B payments piggyback on.
var Ed25519VerifierID = [32]byte(common.HexToHash("0xed25519000000000000000000000000000000000000000000000000000000001"))

// Fixed layout of the verifier instruction payload.
const (
	sigAuthorityStart = 16
	sigAuthorityEnd   = 48
	sigAmountStart    = 112
	sigAmountEnd      = 116
)

// Instruction is one co-executed instruction visible to the engine.
type Instruction struct {
	ProgramID [32]byte
	Data      []byte
}

// InstructionLog exposes the transaction's instruction list so the engine can
// discriminate payment paths and inspect the preceding verification
// instruction.
type InstructionLog interface {
	// CurrentIndex is the position of the order operation itself.
	CurrentIndex() int
	// InstructionAt returns the instruction at the given position.
	InstructionAt(index int) (Instruction, bool)
}
