package model

import "fmt"

// InputType must match the input type enum of the native input layer.
type InputType int32

const (
	InputNone   InputType = 0
	InputButton InputType = 1
	InputStick  InputType = 2
	InputMotion InputType = 3
	InputTouch  InputType = 4
)

var inputTypes = newCodeTable(InputNone, InputNone, InputButton, InputStick, InputMotion, InputTouch)

// InputTypeFrom decodes a native code, defaulting to InputNone.
func InputTypeFrom(code int) InputType {
	return inputTypes.decode(code)
}

// InputTypes lists every variant in code order.
func InputTypes() []InputType {
	return inputTypes.values()
}

// Int returns the native code.
func (t InputType) Int() int {
	return int(t)
}

func (t InputType) String() string {
	switch t {
	case InputNone:
		return "None"
	case InputButton:
		return "Button"
	case InputStick:
		return "Stick"
	case InputMotion:
		return "Motion"
	case InputTouch:
		return "Touch"
	}
	return fmt.Sprintf("InputType(%d)", int32(t))
}

// NativeAnalog must match the analog stick enum of the native settings.
type NativeAnalog int32

const (
	AnalogLStick NativeAnalog = 0
	AnalogRStick NativeAnalog = 1
)

var nativeAnalogs = newCodeTable(AnalogLStick, AnalogLStick, AnalogRStick)

// NativeAnalogFrom decodes a native code, defaulting to AnalogLStick.
func NativeAnalogFrom(code int) NativeAnalog {
	return nativeAnalogs.decode(code)
}

// NativeAnalogs lists every variant in code order.
func NativeAnalogs() []NativeAnalog {
	return nativeAnalogs.values()
}

// Int returns the native code.
func (a NativeAnalog) Int() int {
	return int(a)
}

func (a NativeAnalog) String() string {
	switch a {
	case AnalogLStick:
		return "LStick"
	case AnalogRStick:
		return "RStick"
	}
	return fmt.Sprintf("NativeAnalog(%d)", int32(a))
}

// InputBinding is one mapped control for a player.
type InputBinding struct {
	Button string
	Type   InputType
	Analog NativeAnalog
}

// Label renders the binding source in a compact form.
func (b InputBinding) Label() string {
	switch b.Type {
	case InputStick:
		if b.Analog == AnalogRStick {
			return "Right stick"
		}
		return "Left stick"
	case InputNone:
		return "Unmapped"
	}
	return b.Type.String()
}
