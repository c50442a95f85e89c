package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// ReasonTooManyAttempts is reported when a key has used up its window.
const ReasonTooManyAttempts = "too many attempts"

const unknownClient = "unknown"

// Decision is the outcome of a single CheckAndRecord call.
type Decision struct {
	Allowed  bool
	Reason   string
	Attempts int
}

// Policy bounds attempts per key inside a fixed window.
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// DefaultPolicy allows two attempts per thirty minutes.
var DefaultPolicy = Policy{MaxAttempts: 2, Window: 30 * time.Minute}

// Hit is what a store reports after atomically consulting and updating a counter.
type Hit struct {
	Allowed  bool
	Attempts int
}

// Key builds the counter key for a client address and page code.
func Key(clientIP, code string) string {
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		clientIP = unknownClient
	}
	return fmt.Sprintf("ip:%s:slug:%s", clientIP, code)
}
