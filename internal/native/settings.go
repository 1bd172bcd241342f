// Package native is the boundary to the emulator core. Settings are read and
// written through typed getters and setters keyed by stable identifiers, GPU
// drivers are managed as package files on disk, and add-on and input data is
// exposed as plain records.
package native

import "errors"

// ErrUnknownKey is returned when a key has neither a stored value nor a
// registered default.
var ErrUnknownKey = errors.New("unknown setting key")

// Settings is the typed accessor surface of the native settings backend.
// Getters return the per-game value when a game context is active and the
// key is overridden, unless needsGlobal asks for the global value.
type Settings interface {
	GetByte(key string, needsGlobal bool) uint8
	SetByte(key string, value uint8)
	GetShort(key string, needsGlobal bool) int16
	SetShort(key string, value int16)
	GetInt(key string, needsGlobal bool) int32
	SetInt(key string, value int32)
	GetLong(key string, needsGlobal bool) int64
	SetLong(key string, value int64)
	GetBoolean(key string, needsGlobal bool) bool
	SetBoolean(key string, value bool)
	GetString(key string, needsGlobal bool) string
	SetString(key string, value string)

	// IsGlobal reports whether key currently resolves to the global value.
	IsGlobal(key string) bool
	// SetGlobal drops (true) or creates (false) the per-game override.
	SetGlobal(key string, global bool)
	// SetPerGame switches the override context; an empty id selects global.
	SetPerGame(gameID string)
	PerGame() string

	Save() error
}

// Preferences holds app-side flags that never reach the core.
type Preferences interface {
	Bool(key string, fallback bool) bool
	SetBool(key string, value bool)
	Save() error
}
