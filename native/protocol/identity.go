package protocol

import "github.com/ethereum/go-ethereum/common"

// RootAdmin is the compiled-in primary administrator. Every protocol level
// operation must be signed by this identity and its profile can never be
// removed.
var RootAdmin = [20]byte(common.HexToAddress("0x9c4e8a17b3d2f0615c7a2e84d9b1f36085c4d27e"))

// SigningAuthority is the compiled-in ed25519 public key that co-signs
// off-chain card payments. Path B order payments must carry a verification
// instruction produced by this key.
var SigningAuthority = [32]byte(common.HexToHash("0x51a3bfe07c92d6184f09e5cd2b8a74e6d3217f88a05b64c19e372ddc4a16b90f"))
