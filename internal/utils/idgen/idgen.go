package idgen

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewObjectID returns a lower-case ULID used in storage object keys.
// ULIDs sort by creation time, so listing a page's prefix keeps upload order.
func NewObjectID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

// IsObjectID reports whether value parses as a ULID.
func IsObjectID(value string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(strings.TrimSpace(value)))
	return err == nil
}
