package state

import "github.com/atomicstack/emu-settings-control/internal/menu"

// SettingStore keeps the resolved settings together with the game they were
// resolved for.
type SettingStore interface {
	Entries() []menu.SettingEntry
	SetEntries([]menu.SettingEntry)
	Game() string
	SetGame(string)
}

type settingStore struct {
	entries []menu.SettingEntry
	game    string
}

func NewSettingStore() SettingStore {
	return &settingStore{}
}

func (s *settingStore) Entries() []menu.SettingEntry {
	return cloneEntries(s.entries)
}

func (s *settingStore) SetEntries(entries []menu.SettingEntry) {
	s.entries = cloneEntries(entries)
}

func (s *settingStore) Game() string {
	return s.game
}

func (s *settingStore) SetGame(game string) {
	s.game = game
}

type AddonStore interface {
	Entries() []menu.AddonEntry
	SetEntries([]menu.AddonEntry)
}

type addonStore struct {
	entries []menu.AddonEntry
}

func NewAddonStore() AddonStore {
	return &addonStore{}
}

func (a *addonStore) Entries() []menu.AddonEntry {
	return cloneEntries(a.entries)
}

func (a *addonStore) SetEntries(entries []menu.AddonEntry) {
	a.entries = cloneEntries(entries)
}

type PlayerStore interface {
	Entries() []menu.PlayerEntry
	SetEntries([]menu.PlayerEntry)
}

type playerStore struct {
	entries []menu.PlayerEntry
}

func NewPlayerStore() PlayerStore {
	return &playerStore{}
}

func (p *playerStore) Entries() []menu.PlayerEntry {
	return cloneEntries(p.entries)
}

func (p *playerStore) SetEntries(entries []menu.PlayerEntry) {
	p.entries = cloneEntries(entries)
}
