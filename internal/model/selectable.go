package model

// Selectable is implemented by entries that can be the single active choice
// of a list. The flag is owned by the item; the at-most-one invariant is
// enforced by the list holding it.
type Selectable interface {
	Selected() bool
	SetSelected(bool)
	OnSelectionStateChanged(selected bool)
}

// Driver is a GPU driver package, or the built-in system driver when Path is
// empty.
type Driver struct {
	Title       string
	Version     string
	Description string
	Author      string
	Vendor      string
	Library     string
	Path        string

	selected bool
	// OnChange is called whenever the selection state of the driver changes.
	OnChange func(d *Driver, selected bool)
}

// IsSystem reports whether the driver is the built-in system driver.
func (d *Driver) IsSystem() bool {
	return d.Path == ""
}

func (d *Driver) Selected() bool {
	return d.selected
}

func (d *Driver) SetSelected(selected bool) {
	d.selected = selected
}

func (d *Driver) OnSelectionStateChanged(selected bool) {
	if d.OnChange != nil {
		d.OnChange(d, selected)
	}
}

// Option is a labelled value offered by an option picker.
type Option struct {
	Label string
	Value int

	selected bool
}

func (o *Option) Selected() bool {
	return o.selected
}

func (o *Option) SetSelected(selected bool) {
	o.selected = selected
}

func (o *Option) OnSelectionStateChanged(bool) {}
