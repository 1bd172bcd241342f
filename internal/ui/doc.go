// Package ui contains the Bubble Tea program behind the settings shell.
// Model orchestrates messages; helpers own navigation, filter input,
// rendering and backend synchronisation.
//
// Message flow:
//   - Update first offers key presses to the active form: the value form for
//     driver paths, setting values and input profiles, or the first launch
//     dialog. Other messages go through a typed handler registry.
//   - Enter on an entry either loads a child level (loadMenuCmd, answered by
//     categoryLoadedMsg) or runs the node action on the command bus. Actions
//     answer with menu.ActionResult, or with a prompt that opens a form or
//     the option picker.
//   - After every successful action the model fetches fresh snapshots
//     (refreshMsg) so open levels show the new state without waiting for
//     the next poll.
//
// State ownership:
//   - Level state (items, filter, cursor, marks, viewport) lives in
//     internal/ui/state.Level. Radio levels keep the cursor on the entry in
//     effect; multi-select levels start with the enabled entries marked.
//   - Driver, setting, add-on and player stores from internal/state are fed
//     by the dispatcher, so loaders and the details panel always read the
//     latest snapshot.
//
// Backend interactions:
//   - A backend.Watcher polls the settings file and the driver directory.
//     Update waits for its events and hands them to applyBackendEvent, which
//     updates the stores and rebuilds the affected levels.
package ui
