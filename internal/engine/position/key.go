package position

import (
	"strconv"
	"sync/atomic"
)

// Key is a stable opaque identifier for a text leaf. Keys survive every
// operation that does not remove the node, which makes them the durable
// half of a Point (the cached Path is only a hint).
type Key string

// keyCounter generates unique keys. Thread-safe via atomic operations.
var keyCounter uint64

// NewKey returns a process-unique Key.
func NewKey() Key {
	return Key("t" + strconv.FormatUint(atomic.AddUint64(&keyCounter, 1), 10))
}

// IsZero returns true if the key is empty.
func (k Key) IsZero() bool {
	return k == ""
}
