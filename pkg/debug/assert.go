package debug

var assertsEnabled bool

// SetAsserts turns contract assertions on or off. Assertions are off by
// default; turn them on in tests and debug builds to make caller contract
// violations panic instead of being silently absorbed. Toggle only at setup
// time, never while a block is being processed.
func SetAsserts(on bool) {
	assertsEnabled = on
}

// AssertsEnabled reports whether contract assertions are active.
func AssertsEnabled() bool {
	return assertsEnabled
}

// Assert panics with msg when assertions are enabled and cond is false.
// Pass a fixed message string: with assertions disabled the call performs no
// work and no allocation, which keeps it legal on the real-time path.
func Assert(cond bool, msg string) {
	if assertsEnabled && !cond {
		panic("assert: " + msg)
	}
}
