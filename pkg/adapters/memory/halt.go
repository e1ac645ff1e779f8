package memory

import (
	"context"
	"sync/atomic"
)

// HaltFlag implements ports.HaltSource with a process-local flag.
// Safe for concurrent use.
type HaltFlag struct {
	halted atomic.Bool
}

// NewHaltFlag creates a lowered flag.
func NewHaltFlag() *HaltFlag {
	return &HaltFlag{}
}

// Halt raises the flag.
func (f *HaltFlag) Halt() {
	f.halted.Store(true)
}

// Reset lowers the flag.
func (f *HaltFlag) Reset() {
	f.halted.Store(false)
}

// Halted reports whether the flag is raised.
func (f *HaltFlag) Halted(ctx context.Context) (bool, error) {
	return f.halted.Load(), nil
}
