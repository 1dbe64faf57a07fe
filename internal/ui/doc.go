// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the widget registry:
//  1. [WidgetListView] : Browse dashboard widgets and their bound items
//  2. [ItemPickView] : Pick a domain item to bind to the selected widget
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View
// pattern. All state lives in the injected core; every key action maps to a
// registry or collection operation and the lists are rebuilt from the result,
// so the screen always reflects the cache.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, n, x, d, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
