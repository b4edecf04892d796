package events

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

func hexAddr(addr [20]byte) string {
	return "0x" + common.Bytes2Hex(addr[:])
}

func hexHash(h [32]byte) string {
	return "0x" + common.Bytes2Hex(h[:])
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
