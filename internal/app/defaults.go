// Package app assembles the engine: runtime state, script loading,
// the single-threaded event loop, and the renderer snapshot.
package app

import _ "embed"

// defaultConfig is the built-in configuration layer. It defines the
// base modes and default bindings; the user file overrides it slot by
// slot. A failure evaluating it is a fatal startup error.
//
//go:embed default.lua
var defaultConfig string

// baseMode is the permanent bottom of the mode stack.
const baseMode = "normal"
