// Package ui provides the pokesearch terminal user interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the root tea.Model; it owns the
// widgets (search box, spinner, help) and a cached state.View snapshot, but
// every change to search state goes through the state.Controller. Rendering is
// done by small stateless helpers in render.go that take the snapshot and a
// Styles value and return strings.
//
// # Package Structure
//
//   - model.go: Model, Options, key handling and the resolve command
//   - render.go: search bar, tooltip, cards, pagination, loader and error text
//   - boundary.go: fault boundary around the root model
//   - theme.go: Dracula and Slate palettes and their Lipgloss styles
//   - keys.go: key bindings, also fed to the bubbles help view
//   - style_helpers.go: background-preserving render helpers
//   - run.go: program startup
//
// # Event Flow
//
//  1. Init mounts the controller and issues the first resolve command.
//  2. Key presses call controller transitions; those that need data return a
//     state.Request, which becomes a tea.Cmd running the Resolver.
//  3. The command replies with a resolvedMsg tagged with the owning controller
//     and request sequence; the controller drops anything stale.
//  4. View renders from the refreshed snapshot.
//
// # Focus
//
// Tab cycles search box → info icon → results. The tooltip is visible while
// the info icon has focus or after ? toggles it. Single-letter page keys only
// apply outside the search box; pgup/pgdown work everywhere.
//
// # Fault Boundary
//
// Boundary recovers panics from the wrapped model's Update and View and shows
// "Something went wrong." with a reload prompt. Pressing r builds a brand new
// model from the Factory; nothing from the faulted model is reused. The !
// key arms a deliberate render fault for exercising this path.
//
// # Key Bindings
//
//   - enter: Search (empty input browses all)
//   - ←/h/p/pgup, →/l/n/pgdown: Previous/next page
//   - /: Focus search box; esc leaves it
//   - ?: Toggle search tips
//   - T: Cycle theme (saved to prefs)
//   - H: Toggle full help
//   - !: Error Button
//   - q (outside the search box) or ctrl+c: Quit
package ui
