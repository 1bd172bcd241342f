package model

// OverlayLayout names the on-screen control layout variants.
type OverlayLayout string

const (
	OverlayLandscape OverlayLayout = "Landscape"
	OverlayPortrait  OverlayLayout = "Portrait"
	OverlayFoldable  OverlayLayout = "Foldable"
)

// OverlayLayoutFrom decodes a layout id, defaulting to OverlayLandscape.
func OverlayLayoutFrom(id string) OverlayLayout {
	switch OverlayLayout(id) {
	case OverlayPortrait:
		return OverlayPortrait
	case OverlayFoldable:
		return OverlayFoldable
	}
	return OverlayLandscape
}

// Position is a normalised (x, y) pair.
type Position struct {
	X float64
	Y float64
}

// OverlayControlData describes one overlay control across layouts.
type OverlayControlData struct {
	ID                string
	Enabled           bool
	LandscapePosition Position
	PortraitPosition  Position
	FoldablePosition  Position
}

// PositionFromLayout returns the control position for the given layout.
func (d OverlayControlData) PositionFromLayout(layout OverlayLayout) Position {
	switch layout {
	case OverlayPortrait:
		return d.PortraitPosition
	case OverlayFoldable:
		return d.FoldablePosition
	default:
		return d.LandscapePosition
	}
}
