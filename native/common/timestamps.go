package common

// CreationBackdate shifts freshly minted record timestamps 20 hours into the
// past so cooldown windows start already elapsed.
const CreationBackdate = 20 * 60 * 60

// Backdated converts a unix timestamp to the stored creation time, floored at
// zero.
func Backdated(now int64) uint64 {
	ts := now - CreationBackdate
	if ts < 0 {
		ts = 0
	}
	return uint64(ts)
}
