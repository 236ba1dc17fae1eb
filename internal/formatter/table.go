package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lowendtheory/dubplate/internal/api"
)

var (
	tableTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	tableRankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tableScoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// RenderChartTable renders a chart as a styled terminal table.
func RenderChartTable(chart *Chart) string {
	var b strings.Builder

	b.WriteString(tableTitleStyle.Render(chart.Title))
	b.WriteString("\n\n")

	titleWidth, artistWidth := columnWidths(chart.Tracks)
	header := fmt.Sprintf("%4s  %-*s  %-*s  %6s  %5s", "#", titleWidth, "Title", artistWidth, "Artist", "Score", "Votes")
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteByte('\n')

	for i, track := range chart.Tracks {
		rank := tableRankStyle.Render(fmt.Sprintf("%4d", i+1))
		score := tableScoreStyle.Render(fmt.Sprintf("%6.2f", track.Score))
		b.WriteString(fmt.Sprintf("%s  %-*s  %-*s  %s  %5d\n",
			rank, titleWidth, track.Title, artistWidth, track.Artist, score, track.VoteCount))
	}

	if len(chart.Tracks) == 0 {
		b.WriteString("no tracks\n")
	}
	return b.String()
}

func columnWidths(tracks []api.Track) (int, int) {
	titleWidth, artistWidth := len("Title"), len("Artist")
	for _, t := range tracks {
		if len(t.Title) > titleWidth {
			titleWidth = len(t.Title)
		}
		if len(t.Artist) > artistWidth {
			artistWidth = len(t.Artist)
		}
	}
	return titleWidth, artistWidth
}
