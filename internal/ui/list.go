package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/lowendtheory/dubplate/internal/api"
)

var (
	_ list.Item = chartItem{}
	_ list.Item = trackItem{}
)

// ChartPanel is one fetched chart shown in the panel list.
type ChartPanel struct {
	Name   string
	Params api.ChartParams
	Tracks []api.Track
}

// chartItem wraps [ChartPanel] to implement [list.Item].
type chartItem struct {
	panel ChartPanel
}

func (i chartItem) FilterValue() string { return i.panel.Name }
func (i chartItem) Title() string       { return i.panel.Name }
func (i chartItem) Description() string {
	return fmt.Sprintf("%d tracks", len(i.panel.Tracks))
}

// trackItem wraps [api.Track] to implement [list.Item].
type trackItem struct {
	rank  int
	track api.Track
}

func (i trackItem) FilterValue() string { return i.track.Title }
func (i trackItem) Title() string {
	return fmt.Sprintf("%d. %s", i.rank, i.track.Title)
}
func (i trackItem) Description() string {
	return fmt.Sprintf("%s • %.2f (%d votes)", i.track.Artist, i.track.Score, i.track.VoteCount)
}
