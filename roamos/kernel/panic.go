package kernel

import "sync/atomic"

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var (
	panicActive  atomic.Bool
	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked in this process.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once, for the first panic. It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	if !panicActive.CompareAndSwap(false, true) {
		return
	}
	info.Stack = captureStack()
	if fn, ok := panicHandler.Load().(func(PanicInfo)); ok && fn != nil {
		fn(info)
	}
}
