package model

import "fmt"

// PatchType mirrors the native add-on category codes.
type PatchType int32

const (
	PatchUpdate PatchType = 0
	PatchDLC    PatchType = 1
	PatchMod    PatchType = 2
)

var patchTypes = newCodeTable(PatchUpdate, PatchUpdate, PatchDLC, PatchMod)

// PatchTypeFrom decodes a native code, defaulting to PatchUpdate.
func PatchTypeFrom(code int) PatchType {
	return patchTypes.decode(code)
}

// PatchTypes lists every variant in code order.
func PatchTypes() []PatchType {
	return patchTypes.values()
}

// Int returns the native code.
func (p PatchType) Int() int {
	return int(p)
}

func (p PatchType) String() string {
	switch p {
	case PatchUpdate:
		return "Update"
	case PatchDLC:
		return "DLC"
	case PatchMod:
		return "Mod"
	}
	return fmt.Sprintf("PatchType(%d)", int32(p))
}

// Patch is an installed add-on for a game as reported by the native side.
type Patch struct {
	Name    string
	Version string
	Type    PatchType
	Enabled bool
}
