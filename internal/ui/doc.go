// Package ui contains the Bubble Tea popup front-end. It renders the shortcut
// menu and the management menu under a one-row stand-in for the tray icon
// and turns keys and mouse gestures into dispatcher events.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys in input.go, mouse in mouse.go, resizes in view.go).
//   - Gestures become dispatcher.Event values. The dispatcher mutates the
//     shortcut store and the presentation machine and returns a Result; the
//     model then re-reads a Snapshot and mirrors it into its two levels.
//   - Management commands go through the internal/ui/command bus so disabled
//     rows are traced and dropped before they reach the dispatcher.
//
// State ownership:
//   - Which menus are open, the selection and the pending edit live in the
//     presentation machine; the model never decides them on its own.
//   - The model owns only view state: the filter, the cursor of each level,
//     the viewport and the inline text input used while editing.
//
// Timing:
//   - A tick every DefaultTickInterval lets the dispatcher expire the idle
//     and suppression deadlines. A zero interval disables ticking.
//   - A backend.Watcher reports edits to the shortcut file; they are applied
//     through the dispatcher, which defers them while an edit is pending.
package ui
