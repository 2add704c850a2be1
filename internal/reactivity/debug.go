package reactivity

import (
	"fmt"
	"sync/atomic"
)

// debugMode mirrors the teacher's package-level debug flag: a cheap
// atomic bool gating diagnostic prints, rather than a structured logging
// dependency nothing in the stack pulls in for this package.
var debugMode atomic.Bool

// SetDebug toggles the "[vireo]" diagnostic lines Logf prints for the
// reactivity package.
func SetDebug(on bool) { debugMode.Store(on) }

// Logf prints a tagged diagnostic line, only when debug mode is enabled.
// Non-fatal warnings (writing to a read-only computed, a readonly-proxy
// write) go through Warnf instead, which always prints.
func Logf(format string, args ...any) {
	if !debugMode.Load() {
		return
	}
	fmt.Printf("[vireo] "+format+"\n", args...)
}

// Warnf always prints, used for development-mode diagnostics that are not
// gated behind debugMode (readonly writes, no-op computed writes).
func Warnf(format string, args ...any) {
	fmt.Printf("[vireo warning] "+format+"\n", args...)
}
