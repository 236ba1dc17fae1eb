package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lowendtheory/dubplate/internal/api"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ChartListView ViewState = iota
	TrackListView
	CommentsView
)

// defaultPanels are the chart panels fetched on startup.
var defaultPanels = []ChartPanel{
	{Name: "Weekly Chart", Params: api.ChartParams{Period: "weekly"}},
	{Name: "Monthly Chart", Params: api.ChartParams{Period: "monthly"}},
	{Name: "All Time", Params: api.ChartParams{Period: "all"}},
}

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	client        api.Doer
	view          ViewState
	width         int
	height        int
	chartList     list.Model
	panels        []ChartPanel
	trackList     list.Model
	selectedPanel *ChartPanel
	selectedTrack *api.Track
	comments      []api.Comment
	err           error
	help          help.Model
	keys          keyMap
}

type chartsFetchedMsg struct {
	panels []ChartPanel
	err    error
}

type commentsFetchedMsg struct {
	comments []api.Comment
	err      error
}

// NewModel creates a new TUI model backed by the given client.
func NewModel(ctx context.Context, client api.Doer) *Model {
	return &Model{
		ctx:    ctx,
		view:   ChartListView,
		client: client,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init kicks off the concurrent chart panel fetch.
func (m *Model) Init() tea.Cmd {
	return m.fetchCharts()
}

func (m *Model) fetchCharts() tea.Cmd {
	return func() tea.Msg {
		requests := make([]api.PanelRequest, len(defaultPanels))
		for i, panel := range defaultPanels {
			requests[i] = api.PanelRequest{Name: panel.Name, Op: api.OpCharts, Req: api.Request{Query: panel.Params.Query()}}
		}

		results, err := api.FetchAll(m.ctx, m.client, nil, requests)
		panels := make([]ChartPanel, 0, len(defaultPanels))
		for _, panel := range defaultPanels {
			res, ok := results[panel.Name]
			if !ok || res.Err != nil {
				continue
			}
			tracks, derr := api.DecodeTracks(res.Data)
			if derr != nil {
				continue
			}
			panel.Tracks = tracks
			panels = append(panels, panel)
		}
		if len(panels) == 0 {
			return chartsFetchedMsg{err: err}
		}
		return chartsFetchedMsg{panels: panels}
	}
}

func (m *Model) fetchComments(trackID int64) tea.Cmd {
	return func() tea.Msg {
		comments, err := api.ListComments(m.ctx, m.client, trackID)
		return commentsFetchedMsg{comments: comments, err: err}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.chartList.Width() == 0 {
			m.chartList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ChartListView:
			return m.handleChartListKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case CommentsView:
			return m.handleCommentsKeys(msg)
		}

	case chartsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.panels = msg.panels
		items := make([]list.Item, len(msg.panels))
		for i, panel := range msg.panels {
			items[i] = chartItem{panel: panel}
		}
		m.chartList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.chartList.Title = "Charts"
		m.chartList.SetSize(m.width-4, m.height-8)
		return m, nil

	case commentsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = TrackListView
			return m, nil
		}
		m.comments = msg.comments
		m.view = CommentsView
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleChartListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.chartList.SelectedItem()
		if selected != nil {
			if ci, ok := selected.(chartItem); ok {
				m.showPanel(ci.panel)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.chartList, cmd = m.chartList.Update(msg)
	return m, cmd
}

func (m *Model) showPanel(panel ChartPanel) {
	m.selectedPanel = &panel
	items := make([]list.Item, len(panel.Tracks))
	for i, track := range panel.Tracks {
		items[i] = trackItem{rank: i + 1, track: track}
	}
	m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = panel.Name
	m.trackList.SetSize(m.width-4, m.height-8)
	m.view = TrackListView
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ChartListView
		m.err = nil
		return m, nil
	case "enter":
		selected := m.trackList.SelectedItem()
		if selected != nil {
			if ti, ok := selected.(trackItem); ok {
				m.selectedTrack = &ti.track
				return m, m.fetchComments(ti.track.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleCommentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = TrackListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ChartListView:
		m.chartList, cmd = m.chartList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == ChartListView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ChartListView:
		if len(m.panels) == 0 {
			return styles.help.Render("Fetching charts...")
		}
		return m.chartList.View() + "\n" + m.help.View(m.keys)
	case TrackListView:
		return m.trackList.View() + "\n" + m.help.View(m.keys)
	case CommentsView:
		return m.renderComments()
	default:
		return ""
	}
}

func (m *Model) renderComments() string {
	var b strings.Builder
	if m.selectedTrack != nil {
		b.WriteString(styles.title.Render(fmt.Sprintf("%s - %s", m.selectedTrack.Artist, m.selectedTrack.Title)))
		b.WriteByte('\n')
	}

	if len(m.comments) == 0 {
		b.WriteString(styles.help.Render("No comments yet."))
		b.WriteByte('\n')
	} else {
		sorted := make([]api.Comment, len(m.comments))
		copy(sorted, m.comments)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt > sorted[j].CreatedAt })
		for _, c := range sorted {
			b.WriteString(styles.ok.Render(c.Username))
			b.WriteString(fmt.Sprintf(": %s\n", c.Text))
		}
	}

	b.WriteByte('\n')
	b.WriteString(styles.help.Render("esc back • q quit"))
	return b.String()
}
