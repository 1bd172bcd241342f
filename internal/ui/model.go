package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/data/dispatcher"
	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/menu"
	"github.com/atomicstack/emu-settings-control/internal/setup"
	"github.com/atomicstack/emu-settings-control/internal/state"
	"github.com/atomicstack/emu-settings-control/internal/theme"
	"github.com/atomicstack/emu-settings-control/internal/ui/command"
	uistate "github.com/atomicstack/emu-settings-control/internal/ui/state"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeValueForm
	ModeSetup
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "main menu"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Controller is everything the UI needs from the settings backend: the menu
// mutations, the snapshot source and the first launch flow.
type Controller interface {
	menu.Backend
	backend.Source
	SetupPending() bool
	SetupDialog() setup.Dialog
	ConfirmSetup() error
}

// Model implements the Bubble Tea model for the settings shell.
type Model struct {
	stack             []*level
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendState      map[backend.Kind]error
	backendLastErr    string
	showFooter        bool
	verbose           bool
	valueForm         *menu.ValueForm
	dialog            setup.Dialog
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	registry   *menu.Registry
	bus        *command.Bus
	mode       Mode
	rootMenuID string
	rootTitle  string
	ctrl       Controller
	drivers    state.DriverStore
	settings   state.SettingStore
	addons     state.AddonStore
	players    state.PlayerStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the UI state with the root menu and configuration.
// When ctrl is set the stores are primed synchronously so the first frame
// already shows real data.
func NewModel(ctrl Controller, width, height int, showFooter bool, verbose bool, watcher *backend.Watcher, rootMenu string) *Model {
	registry := menu.BuildRegistry()
	drivers := state.NewDriverStore()
	settingStore := state.NewSettingStore()
	addons := state.NewAddonStore()
	players := state.NewPlayerStore()
	rootItems := menu.RootItems()
	root := newLevel("root", "Main Menu", rootItems, registry.Root())
	m := &Model{
		stack:        []*level{root},
		registry:     registry,
		bus:          command.New(),
		backend:      watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   showFooter,
		verbose:      verbose,
		mode:         ModeMenu,
		rootTitle:    defaultRootTitle,
		ctrl:         ctrl,
		drivers:      drivers,
		settings:     settingStore,
		addons:       addons,
		players:      players,
		dispatcher:   dispatcher.New(drivers, settingStore, addons, players),
	}
	m.applyNodeSettings(root)
	m.syncViewport(root)
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	if ctrl != nil {
		for _, evt := range fetchSnapshots(ctrl) {
			m.applyBackendEvent(evt)
		}
	}
	m.applyRootMenuOverride(rootMenu)
	m.registerHandlers()
	m.startSetup()
	return m
}

func (m *Model) startSetup() {
	if m.ctrl == nil {
		return
	}
	pending := m.ctrl.SetupPending()
	events.App.Setup(pending)
	if !pending {
		return
	}
	m.dialog = m.ctrl.SetupDialog()
	m.mode = ModeSetup
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	handled, cmd := m.handleActiveForm(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeValueForm:
		return m.handleValueForm(msg)
	case ModeSetup:
		return m.handleSetupDialog(msg)
	default:
		return false, nil
	}
}

func (m *Model) handleSetupDialog(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "enter", " ", "o":
		if m.ctrl != nil {
			if err := m.ctrl.ConfirmSetup(); err != nil {
				logging.Error(err)
				m.errMsg = err.Error()
			}
		}
		events.App.SetupConfirmed()
		m.mode = ModeMenu
	}
	return true, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(categoryLoadedMsg{}): m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(menu.ValuePrompt{}):  m.handleValuePromptMsg,
		reflect.TypeOf(menu.OptionPrompt{}): m.handleOptionPromptMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(refreshMsg{}):        m.handleRefreshMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
