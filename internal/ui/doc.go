// Package ui implements the terminal moodboard browser using bubbletea's Elm architecture.
//
// The browser has two views:
//  1. [BoardView] : a vertically scrolling column of item cards
//  2. [CategoryView] : a category picker that filters the board
//
// Cards are laid out at fixed heights, so every scroll or resize yields an
// intersection ratio per card. The model reports those ratios to the
// visibility tracker and drains the dispatch queue on every frame tick, which
// makes the bubbletea loop the single goroutine that owns embed state.
// Controlled providers play through [PreviewBackend] players that simulate the
// provider APIs: a backend becomes available a moment after its script is
// injected and players report ready shortly after creation.
//
// Keyboard navigation uses vim-style bindings (j/k, ctrl+d/ctrl+u, c, d, o, r, q) with contextual help displayed
// via charmbracelet/bubbles/help.
package ui
