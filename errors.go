// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"errors"
	"fmt"
)

const prefix = "rsx: "

// ErrBoundAddress is returned by InvalidateSurfaceAddress when the
// address names a currently-bound surface; this is treated as a
// recoverable condition, logged and left as a no-op rather than a panic.
var ErrBoundAddress = errors.New(prefix + "address is currently bound")

// fatalf panics with the package prefix. Reserved for the "fatal
// programmer error" class: looking up a surface at an
// address the caller should already know is invalid is a contract
// violation, not a runtime condition to recover from.
func fatalf(format string, args ...any) {
	panic(prefix + fmt.Sprintf(format, args...))
}
