package native

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/atomicstack/emu-settings-control/internal/model"
)

const settingsFileName = "settings.toml"

type fileData struct {
	Global      map[string]interface{}            `toml:"global"`
	Games       map[string]map[string]interface{} `toml:"games"`
	Preferences map[string]interface{}            `toml:"preferences"`
	Addons      map[string][]addonRecord          `toml:"addons"`
	Input       map[string]playerRecord           `toml:"input"`
}

type addonRecord struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Type    int    `toml:"type"`
	Enabled bool   `toml:"enabled"`
}

type playerRecord struct {
	Profile  string          `toml:"profile"`
	Bindings []bindingRecord `toml:"bindings"`
}

type bindingRecord struct {
	Button string `toml:"button"`
	Type   int    `toml:"type"`
	Analog int    `toml:"analog"`
}

// Store is a TOML file backed implementation of Settings and Preferences.
type Store struct {
	path string

	mu       sync.RWMutex
	data     fileData
	defaults map[string]interface{}
	game     string
	dirty    bool
}

// OpenStore loads dir/settings.toml, starting empty when it does not exist.
func OpenStore(dir string) (*Store, error) {
	s := &Store{
		path:     filepath.Join(dir, settingsFileName),
		defaults: make(map[string]interface{}),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file, discarding unsaved changes.
func (s *Store) Reload() error {
	data := fileData{}
	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read settings: %w", err)
	default:
		if _, err := toml.Decode(string(raw), &data); err != nil {
			return fmt.Errorf("parse settings %s: %w", s.path, err)
		}
	}
	normalize(&data)
	s.mu.Lock()
	s.data = data
	s.dirty = false
	s.mu.Unlock()
	return nil
}

func normalize(data *fileData) {
	if data.Global == nil {
		data.Global = make(map[string]interface{})
	}
	if data.Games == nil {
		data.Games = make(map[string]map[string]interface{})
	}
	if data.Preferences == nil {
		data.Preferences = make(map[string]interface{})
	}
	if data.Addons == nil {
		data.Addons = make(map[string][]addonRecord)
	}
	if data.Input == nil {
		data.Input = make(map[string]playerRecord)
	}
}

// Save writes pending changes atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.data); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := atomicWrite(s.path, buf.Bytes()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// SetDefault registers the value returned for key when nothing is stored.
func (s *Store) SetDefault(key string, value interface{}) {
	s.mu.Lock()
	s.defaults[key] = value
	s.mu.Unlock()
}

// SetPerGame implements Settings.
func (s *Store) SetPerGame(gameID string) {
	s.mu.Lock()
	s.game = strings.TrimSpace(gameID)
	s.mu.Unlock()
}

// PerGame implements Settings.
func (s *Store) PerGame() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game
}

// IsGlobal implements Settings.
func (s *Store) IsGlobal(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.game == "" {
		return true
	}
	_, ok := s.data.Games[s.game][key]
	return !ok
}

// SetGlobal implements Settings.
func (s *Store) SetGlobal(key string, global bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == "" {
		return
	}
	overrides := s.data.Games[s.game]
	if global {
		if _, ok := overrides[key]; ok {
			delete(overrides, key)
			if len(overrides) == 0 {
				delete(s.data.Games, s.game)
			}
			s.dirty = true
		}
		return
	}
	if _, ok := overrides[key]; ok {
		return
	}
	value := s.globalValueLocked(key)
	if value == nil {
		return
	}
	if overrides == nil {
		overrides = make(map[string]interface{})
		s.data.Games[s.game] = overrides
	}
	overrides[key] = value
	s.dirty = true
}

// Keys lists every key with a stored global value or a default, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.data.Global)+len(s.defaults))
	for k := range s.data.Global {
		seen[k] = struct{}{}
	}
	for k := range s.defaults {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the raw resolved value for key.
func (s *Store) Lookup(key string, needsGlobal bool) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.valueLocked(key, needsGlobal)
	if v == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}

func (s *Store) globalValueLocked(key string) interface{} {
	if v, ok := s.data.Global[key]; ok {
		return v
	}
	return s.defaults[key]
}

func (s *Store) valueLocked(key string, needsGlobal bool) interface{} {
	if !needsGlobal && s.game != "" {
		if v, ok := s.data.Games[s.game][key]; ok {
			return v
		}
	}
	return s.globalValueLocked(key)
}

func (s *Store) get(key string, needsGlobal bool) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.valueLocked(key, needsGlobal)
}

func (s *Store) set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game != "" {
		overrides := s.data.Games[s.game]
		if overrides == nil {
			overrides = make(map[string]interface{})
			s.data.Games[s.game] = overrides
		}
		overrides[key] = value
	} else {
		s.data.Global[key] = value
	}
	s.dirty = true
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case uint8:
		return int64(n)
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetByte implements Settings.
func (s *Store) GetByte(key string, needsGlobal bool) uint8 {
	return uint8(clamp(toInt64(s.get(key, needsGlobal)), 0, math.MaxUint8))
}

// SetByte implements Settings.
func (s *Store) SetByte(key string, value uint8) { s.set(key, int64(value)) }

// GetShort implements Settings.
func (s *Store) GetShort(key string, needsGlobal bool) int16 {
	return int16(clamp(toInt64(s.get(key, needsGlobal)), math.MinInt16, math.MaxInt16))
}

// SetShort implements Settings.
func (s *Store) SetShort(key string, value int16) { s.set(key, int64(value)) }

// GetInt implements Settings.
func (s *Store) GetInt(key string, needsGlobal bool) int32 {
	return int32(clamp(toInt64(s.get(key, needsGlobal)), math.MinInt32, math.MaxInt32))
}

// SetInt implements Settings.
func (s *Store) SetInt(key string, value int32) { s.set(key, int64(value)) }

// GetLong implements Settings.
func (s *Store) GetLong(key string, needsGlobal bool) int64 {
	return toInt64(s.get(key, needsGlobal))
}

// SetLong implements Settings.
func (s *Store) SetLong(key string, value int64) { s.set(key, value) }

// GetBoolean implements Settings.
func (s *Store) GetBoolean(key string, needsGlobal bool) bool {
	switch v := s.get(key, needsGlobal).(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return toInt64(v) != 0
	}
}

// SetBoolean implements Settings.
func (s *Store) SetBoolean(key string, value bool) { s.set(key, value) }

// GetString implements Settings.
func (s *Store) GetString(key string, needsGlobal bool) string {
	switch v := s.get(key, needsGlobal).(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// SetString implements Settings.
func (s *Store) SetString(key string, value string) { s.set(key, value) }

// Bool implements Preferences.
func (s *Store) Bool(key string, fallback bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.data.Preferences[key].(bool); ok {
		return v
	}
	return fallback
}

// SetBool implements Preferences.
func (s *Store) SetBool(key string, value bool) {
	s.mu.Lock()
	s.data.Preferences[key] = value
	s.dirty = true
	s.mu.Unlock()
}

// Addons returns the add-ons recorded for gameID.
func (s *Store) Addons(gameID string) []model.Patch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.data.Addons[gameID]
	patches := make([]model.Patch, 0, len(records))
	for _, rec := range records {
		patches = append(patches, model.Patch{
			Name:    rec.Name,
			Version: rec.Version,
			Type:    model.PatchTypeFrom(rec.Type),
			Enabled: rec.Enabled,
		})
	}
	return patches
}

// SetAddonsEnabled enables exactly the named add-ons of gameID.
func (s *Store) SetAddonsEnabled(gameID string, names []string) {
	enabled := make(map[string]struct{}, len(names))
	for _, name := range names {
		enabled[name] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.data.Addons[gameID]
	for i := range records {
		_, on := enabled[records[i].Name]
		if records[i].Enabled != on {
			records[i].Enabled = on
			s.dirty = true
		}
	}
}

// PutAddon records or replaces an add-on for gameID.
func (s *Store) PutAddon(gameID string, patch model.Patch) {
	rec := addonRecord{Name: patch.Name, Version: patch.Version, Type: patch.Type.Int(), Enabled: patch.Enabled}
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.data.Addons[gameID]
	for i := range records {
		if records[i].Name == patch.Name {
			records[i] = rec
			s.dirty = true
			return
		}
	}
	s.data.Addons[gameID] = append(records, rec)
	s.dirty = true
}

func playerKey(player int) string {
	return fmt.Sprintf("player%d", player)
}

// InputProfile returns the profile name bound to player, empty when unset.
func (s *Store) InputProfile(player int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Input[playerKey(player)].Profile
}

// SetInputProfile binds a profile name to player.
func (s *Store) SetInputProfile(player int, profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.data.Input[playerKey(player)]
	rec.Profile = profile
	s.data.Input[playerKey(player)] = rec
	s.dirty = true
}

// InputBindings returns the decoded bindings of player.
func (s *Store) InputBindings(player int) []model.InputBinding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.data.Input[playerKey(player)].Bindings
	out := make([]model.InputBinding, 0, len(records))
	for _, rec := range records {
		out = append(out, model.InputBinding{
			Button: rec.Button,
			Type:   model.InputTypeFrom(rec.Type),
			Analog: model.NativeAnalogFrom(rec.Analog),
		})
	}
	return out
}

// SetInputBindings replaces the bindings of player.
func (s *Store) SetInputBindings(player int, bindings []model.InputBinding) {
	records := make([]bindingRecord, 0, len(bindings))
	for _, b := range bindings {
		records = append(records, bindingRecord{Button: b.Button, Type: b.Type.Int(), Analog: b.Analog.Int()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.data.Input[playerKey(player)]
	rec.Bindings = records
	s.data.Input[playerKey(player)] = rec
	s.dirty = true
}
