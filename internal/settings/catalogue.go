package settings

import (
	"fmt"

	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/native"
)

// Keys of the built-in settings as understood by the native backend.
const (
	KeyRendererBackend = "renderer_backend"
	KeyResolution      = "resolution_setup"
	KeyVSync           = "use_vsync"
	KeyDiskShaderCache = "use_disk_shader_cache"
	KeyAudioVolume     = "audio_volume"
	KeySpeedLimit      = "speed_limit"
	KeyLanguage        = "language_index"
	KeyRNGSeed         = "rng_seed"
	KeyDriverPath      = "driver_path"
	KeyTheme           = "theme"
)

// Defaulter is implemented by backends that can register fallback values.
type Defaulter interface {
	SetDefault(key string, value interface{})
}

// Catalogue is the ordered set of settings shown to the user.
type Catalogue struct {
	settings []Setting
	byKey    map[string]Setting

	driverPath *StringSetting
}

func newBase(backend native.Settings, key, title, description string) base {
	return base{key: key, title: title, description: description, backend: backend}
}

func options(labels ...string) []model.Option {
	out := make([]model.Option, len(labels))
	for i, label := range labels {
		out[i] = model.Option{Label: label, Value: i}
	}
	return out
}

// NewCatalogue binds the built-in settings to backend and registers their
// defaults when the backend supports it.
func NewCatalogue(backend native.Settings) *Catalogue {
	c := &Catalogue{byKey: make(map[string]Setting)}
	c.driverPath = &StringSetting{
		base: newBase(backend, KeyDriverPath, "GPU driver", "Path of the active GPU driver package. Empty selects the system driver."),
	}
	c.add(
		&IntSetting{
			base:    newBase(backend, KeyRendererBackend, "Renderer backend", "Graphics API used for rendering."),
			def:     1,
			options: options("OpenGL", "Vulkan", "Null"),
		},
		&IntSetting{
			base:    newBase(backend, KeyResolution, "Resolution scale", "Internal rendering resolution relative to the console."),
			def:     2,
			options: options("0.5x", "0.75x", "1x", "1.5x", "2x", "3x"),
		},
		&IntSetting{
			base:    newBase(backend, KeyVSync, "VSync mode", "Presentation mode used when frames are submitted."),
			def:     2,
			options: options("Immediate", "Mailbox", "FIFO", "FIFO relaxed"),
		},
		&BooleanSetting{
			base: newBase(backend, KeyDiskShaderCache, "Use disk shader cache", "Store compiled shaders on disk to reduce stutter."),
			def:  true,
		},
		&ByteSetting{
			base: newBase(backend, KeyAudioVolume, "Audio volume", "Output volume in percent."),
			def:  100,
			min:  0,
			max:  100,
		},
		&ShortSetting{
			base: newBase(backend, KeySpeedLimit, "Speed limit", "Emulation speed cap in percent."),
			def:  100,
			min:  1,
			max:  1000,
		},
		&IntSetting{
			base:    newBase(backend, KeyLanguage, "System language", "Language reported to games."),
			def:     1,
			options: options("Japanese", "English", "French", "German", "Italian", "Spanish", "Chinese", "Korean", "Dutch", "Portuguese", "Russian"),
		},
		&LongSetting{
			base: newBase(backend, KeyRNGSeed, "RNG seed", "Seed for the emulated random number generator. Zero picks one at boot."),
		},
		c.driverPath,
		&IntSetting{
			base:    newBase(backend, KeyTheme, "Theme", "Colour theme of the app."),
			options: options("Default", "Material You", "Black backgrounds"),
		},
	)
	if d, ok := backend.(Defaulter); ok {
		c.RegisterDefaults(d)
	}
	return c
}

func (c *Catalogue) add(settings ...Setting) {
	for _, s := range settings {
		c.settings = append(c.settings, s)
		c.byKey[s.Key()] = s
	}
}

// RegisterDefaults installs every setting's default into d.
func (c *Catalogue) RegisterDefaults(d Defaulter) {
	for _, s := range c.settings {
		switch v := s.(type) {
		case *BooleanSetting:
			d.SetDefault(v.key, v.def)
		case *ByteSetting:
			d.SetDefault(v.key, int64(v.def))
		case *ShortSetting:
			d.SetDefault(v.key, int64(v.def))
		case *IntSetting:
			d.SetDefault(v.key, int64(v.def))
		case *LongSetting:
			d.SetDefault(v.key, v.def)
		case *StringSetting:
			d.SetDefault(v.key, v.def)
		}
	}
}

// All returns the settings in display order.
func (c *Catalogue) All() []Setting {
	out := make([]Setting, len(c.settings))
	copy(out, c.settings)
	return out
}

// Lookup returns the setting registered under key.
func (c *Catalogue) Lookup(key string) (Setting, error) {
	s, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return s, nil
}

// DriverPath is the string setting holding the active driver package.
func (c *Catalogue) DriverPath() *StringSetting {
	return c.driverPath
}
