// Package settings describes the user-facing settings and binds each one to
// its key in the native settings backend.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/native"
	"github.com/atomicstack/emu-settings-control/internal/selection"
)

// ErrUnknownSetting is returned when a key is not part of the catalogue.
var ErrUnknownSetting = errors.New("unknown setting")

// ErrInvalidValue is returned when text cannot be parsed for a setting.
var ErrInvalidValue = errors.New("invalid setting value")

// Kind identifies the native type backing a setting.
type Kind int

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Setting is implemented by every catalogue entry.
type Setting interface {
	Key() string
	Title() string
	Description() string
	Kind() Kind
	// Global reports whether the setting resolves to the global value.
	Global() bool
	SetGlobal(global bool)
	ValueString(needsGlobal bool) string
	// Reset drops a per-game override, or restores the default globally.
	Reset()
}

// Editable settings accept a textual value from a form.
type Editable interface {
	Setting
	SetFromString(value string) error
}

type base struct {
	key         string
	title       string
	description string
	backend     native.Settings
}

func (b *base) Key() string         { return b.key }
func (b *base) Title() string       { return b.title }
func (b *base) Description() string { return b.description }

func (b *base) Global() bool {
	return b.backend.IsGlobal(b.key)
}

func (b *base) SetGlobal(global bool) {
	b.backend.SetGlobal(b.key, global)
}

func (b *base) perGame() bool {
	return b.backend.PerGame() != ""
}

// BooleanSetting is an on/off setting.
type BooleanSetting struct {
	base
	def bool
}

func (s *BooleanSetting) Kind() Kind { return KindBoolean }

func (s *BooleanSetting) Boolean(needsGlobal bool) bool {
	return s.backend.GetBoolean(s.key, needsGlobal)
}

func (s *BooleanSetting) SetBoolean(value bool) {
	s.backend.SetBoolean(s.key, value)
}

// Toggle flips the effective value.
func (s *BooleanSetting) Toggle() bool {
	next := !s.Boolean(false)
	s.SetBoolean(next)
	return next
}

func (s *BooleanSetting) ValueString(needsGlobal bool) string {
	if s.Boolean(needsGlobal) {
		return "on"
	}
	return "off"
}

func (s *BooleanSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetBoolean(s.def)
}

// IntSetting is a 32-bit integer setting, optionally restricted to a fixed
// set of labelled options.
type IntSetting struct {
	base
	def      int32
	min, max int32
	options  []model.Option
}

func (s *IntSetting) Kind() Kind { return KindInt }

func (s *IntSetting) Int(needsGlobal bool) int32 {
	return s.backend.GetInt(s.key, needsGlobal)
}

func (s *IntSetting) SetInt(value int32) {
	s.backend.SetInt(s.key, value)
}

// Options returns copies of the offered options; nil for free values.
func (s *IntSetting) Options() []model.Option {
	if len(s.options) == 0 {
		return nil
	}
	out := make([]model.Option, len(s.options))
	copy(out, s.options)
	return out
}

// OptionList returns a selection list over the options with the current
// value selected.
func (s *IntSetting) OptionList(needsGlobal bool) *selection.List[*model.Option] {
	current := int(s.Int(needsGlobal))
	items := make([]*model.Option, 0, len(s.options))
	for _, opt := range s.options {
		o := &model.Option{Label: opt.Label, Value: opt.Value}
		o.SetSelected(opt.Value == current)
		items = append(items, o)
	}
	return selection.New(items, selection.FallbackFirst)
}

func (s *IntSetting) ValueString(needsGlobal bool) string {
	v := int(s.Int(needsGlobal))
	for _, opt := range s.options {
		if opt.Value == v {
			return opt.Label
		}
	}
	return strconv.Itoa(v)
}

func (s *IntSetting) SetFromString(value string) error {
	n, err := parseRanged(value, int64(s.min), int64(s.max), 32)
	if err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}
	if len(s.options) > 0 {
		found := false
		for _, opt := range s.options {
			if opt.Value == int(n) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: %w: %d is not an option", s.key, ErrInvalidValue, n)
		}
	}
	s.SetInt(int32(n))
	return nil
}

func (s *IntSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetInt(s.def)
}

// ShortSetting is a 16-bit integer setting.
type ShortSetting struct {
	base
	def      int16
	min, max int16
}

func (s *ShortSetting) Kind() Kind { return KindShort }

func (s *ShortSetting) Short(needsGlobal bool) int16 {
	return s.backend.GetShort(s.key, needsGlobal)
}

func (s *ShortSetting) SetShort(value int16) {
	s.backend.SetShort(s.key, value)
}

func (s *ShortSetting) ValueString(needsGlobal bool) string {
	return strconv.Itoa(int(s.Short(needsGlobal)))
}

func (s *ShortSetting) SetFromString(value string) error {
	n, err := parseRanged(value, int64(s.min), int64(s.max), 16)
	if err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}
	s.SetShort(int16(n))
	return nil
}

func (s *ShortSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetShort(s.def)
}

// ByteSetting is an unsigned 8-bit setting.
type ByteSetting struct {
	base
	def      uint8
	min, max uint8
}

func (s *ByteSetting) Kind() Kind { return KindByte }

func (s *ByteSetting) Byte(needsGlobal bool) uint8 {
	return s.backend.GetByte(s.key, needsGlobal)
}

func (s *ByteSetting) SetByte(value uint8) {
	s.backend.SetByte(s.key, value)
}

func (s *ByteSetting) ValueString(needsGlobal bool) string {
	return strconv.Itoa(int(s.Byte(needsGlobal)))
}

func (s *ByteSetting) SetFromString(value string) error {
	n, err := parseRanged(value, int64(s.min), int64(s.max), 16)
	if err != nil {
		return fmt.Errorf("%s: %w", s.key, err)
	}
	s.SetByte(uint8(n))
	return nil
}

func (s *ByteSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetByte(s.def)
}

// LongSetting is a 64-bit integer setting.
type LongSetting struct {
	base
	def int64
}

func (s *LongSetting) Kind() Kind { return KindLong }

func (s *LongSetting) Long(needsGlobal bool) int64 {
	return s.backend.GetLong(s.key, needsGlobal)
}

func (s *LongSetting) SetLong(value int64) {
	s.backend.SetLong(s.key, value)
}

func (s *LongSetting) ValueString(needsGlobal bool) string {
	return strconv.FormatInt(s.Long(needsGlobal), 10)
}

func (s *LongSetting) SetFromString(value string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w: %q", s.key, ErrInvalidValue, value)
	}
	s.SetLong(n)
	return nil
}

func (s *LongSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetLong(s.def)
}

// StringSetting is a free text setting.
type StringSetting struct {
	base
	def string
}

func (s *StringSetting) Kind() Kind { return KindString }

func (s *StringSetting) Text(needsGlobal bool) string {
	return s.backend.GetString(s.key, needsGlobal)
}

func (s *StringSetting) SetText(value string) {
	s.backend.SetString(s.key, value)
}

func (s *StringSetting) ValueString(needsGlobal bool) string {
	return s.Text(needsGlobal)
}

func (s *StringSetting) SetFromString(value string) error {
	s.SetText(strings.TrimSpace(value))
	return nil
}

func (s *StringSetting) Reset() {
	if s.perGame() {
		s.SetGlobal(true)
		return
	}
	s.SetText(s.def)
}

func parseRanged(value string, lo, hi int64, bits int) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}
	if lo != hi && (n < lo || n > hi) {
		return 0, fmt.Errorf("%w: %d outside [%d,%d]", ErrInvalidValue, n, lo, hi)
	}
	return n, nil
}
