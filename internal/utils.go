package internal

import (
	"crypto/md5"
	"encoding/binary"
)

// maxStableID keeps IDs exactly representable as JSON numbers.
const maxStableID = 1<<52 - 1

// StableID derives a positive, deterministic ID from a string.
// Format: first 8 bytes of md5(s), masked to 52 bits.
func StableID(s string) int64 {
	hash := md5.Sum([]byte(s))
	id := int64(binary.BigEndian.Uint64(hash[:8]) & maxStableID)
	if id == 0 {
		// Anki treats 0 as "no id"
		id = 1
	}
	return id
}
