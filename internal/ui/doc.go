// Package ui provides the interactive table browser for paddock.
//
// # Architecture Overview
//
// The browser is a Bubble Tea program. One Model holds the selected view,
// the last query run for every view, the table on screen and the edit line.
// Queries run as commands off the update loop; each result is written to the
// shared state.Store and comes back as a snapshot message.
//
// # Package Structure
//
//   - app.go: Model, Update loop, commands and the Run entry point
//   - header.go: Status bar, view tabs, podium strip and footer
//   - table.go: Conversion from ergast tables to bubbles table rows
//   - input.go: Parsing the season/round or argument edit line
//   - keys.go: Key bindings (bubbles/key) shared with the help views
//   - help.go: Help overlay
//   - theme.go: Dracula and Slate color themes
//
// # Event Flow
//
//  1. Run() builds the Model from Options and starts the program
//  2. Init runs the initial query, or opens the edit line when the initial
//     view needs arguments
//  3. Tab switches views; each view remembers its own season, round and
//     arguments, so switching back re-runs the same query
//  4. A tick every PollTick re-reads the store, which picks up results from
//     the background watcher when watch mode is on
//  5. Context cancellation cleanly shuts down the program
//
// # Preferences
//
// The theme (cycled with T), the selected view and its season are saved to
// the prefs file whenever they change and restored on the next start.
package ui
