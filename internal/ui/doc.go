// Package ui implements an interactive terminal chart browser using
// bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow:
//  1. [ChartListView] : Pick one of the fetched chart panels
//  2. [TrackListView] : Browse the ranked tracks of the selected chart
//  3. [CommentsView] : Read the comments on the selected track
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Chart panels are fetched concurrently on startup; comments are fetched
// lazily when a track is selected.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
