package engine

import (
	"io"
	"os"
)

// DebugLevel controls how chatty the write path is
type DebugLevel int

const (
	DebugOff DebugLevel = iota
	// DebugSQL prints generated SQL and bound values
	DebugSQL
	// DebugTrace additionally prints per-mutation timing
	DebugTrace
)

// DebugContext carries debug settings shared by the engine and its bindings
type DebugContext struct {
	Level       DebugLevel
	Writer      io.Writer
	ColorOutput bool
}

// DefaultDebugContext returns a silent context writing to stdout
func DefaultDebugContext() *DebugContext {
	return &DebugContext{
		Level:  DebugOff,
		Writer: os.Stdout,
	}
}
