// package formatter exports chart data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lowendtheory/dubplate/internal/api"
)

// Chart pairs a chart's display title with its entries, in rank order.
type Chart struct {
	Title  string
	Period string
	Genre  string
	Tracks []api.Track
}

// ExportToCSV converts a chart to CSV with columns: Rank, Title, Artist, Genre, Score, Votes
func ExportToCSV(chart *Chart) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Title", "Artist", "Genre", "Score", "Votes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, track := range chart.Tracks {
		record := []string{
			strconv.Itoa(i + 1),
			track.Title,
			track.Artist,
			track.Genre,
			strconv.FormatFloat(track.Score, 'f', 2, 64),
			strconv.FormatInt(track.VoteCount, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a chart to a Markdown document.
func ExportToMarkdown(chart *Chart) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", chart.Title))
	if chart.Period != "" {
		buf.WriteString(fmt.Sprintf("**Period**: %s\n", chart.Period))
	}
	if chart.Genre != "" {
		buf.WriteString(fmt.Sprintf("**Genre**: %s\n", chart.Genre))
	}
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(chart.Tracks)))

	buf.WriteString("## Rankings\n\n")
	for i, track := range chart.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%.2f, %d votes)\n",
			i+1, track.Artist, track.Title, track.Score, track.VoteCount))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a chart to plain text.
func ExportToText(chart *Chart) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Chart: %s\n", chart.Title))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(chart.Tracks)))

	for i, track := range chart.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%.2f]\n", i+1, track.Artist, track.Title, track.Score))
	}

	return buf.Bytes(), nil
}

// FormatDuration renders a track duration in milliseconds as m:ss.
func FormatDuration(ms int64) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// Export converts a chart to the named format: "csv", "markdown"/"md", or "text".
func Export(chart *Chart, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "csv":
		return ExportToCSV(chart)
	case "markdown", "md":
		return ExportToMarkdown(chart)
	case "text", "txt", "":
		return ExportToText(chart)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// WriteExport writes a chart to path in the named format. An empty path
// derives the filename from the chart title and format.
func WriteExport(chart *Chart, format, path string) (string, error) {
	data, err := Export(chart, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		base := strings.ReplaceAll(strings.ToLower(chart.Title), " ", "_")
		if base == "" {
			base = "chart"
		}
		path = base + exportExtension(format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func exportExtension(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return ".csv"
	case "markdown", "md":
		return ".md"
	default:
		return ".txt"
	}
}
