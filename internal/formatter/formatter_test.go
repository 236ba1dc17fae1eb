package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lowendtheory/dubplate/internal/api"
	tu "github.com/lowendtheory/dubplate/internal/testing"
)

func sampleChart() *Chart {
	return &Chart{
		Title:  "Weekly Dubstep Chart",
		Period: "weekly",
		Genre:  "dubstep",
		Tracks: []api.Track{
			{ID: 1, Title: "Midnight Request Line", Artist: "Skream", Genre: "dubstep", Score: 9.41, VoteCount: 128},
			{ID: 2, Title: "Anti War Dub", Artist: "Digital Mystikz", Genre: "dubstep", Score: 9.12, VoteCount: 97},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleChart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Rank,Title,Artist,Genre,Score,Votes" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,Midnight Request Line,Skream") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "9.12") {
		t.Errorf("expected score in row %q", lines[2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleChart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Weekly Dubstep Chart",
		"**Period**: weekly",
		"**Tracks**: 2",
		"1. Skream - Midnight Request Line",
		"128 votes",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in markdown output", want)
		}
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleChart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Chart: Weekly Dubstep Chart") {
		t.Errorf("expected chart title, got %q", text)
	}
	if !strings.Contains(text, "2. Digital Mystikz - Anti War Dub") {
		t.Errorf("expected ranked entry, got %q", text)
	}
}

func TestExport(t *testing.T) {
	chart := sampleChart()

	t.Run("Known Formats", func(t *testing.T) {
		for _, format := range []string{"csv", "markdown", "md", "text", "txt", ""} {
			if _, err := Export(chart, format); err != nil {
				t.Errorf("format %q: %v", format, err)
			}
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		if _, err := Export(chart, "xml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("Explicit Path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chart.csv")
		got, err := WriteExport(sampleChart(), "csv", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != path {
			t.Errorf("expected path %q, got %q", path, got)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "Midnight Request Line") {
			t.Error("exported file missing chart data")
		}
	})

	t.Run("Derived Filename", func(t *testing.T) {
		wd := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, wd)

		got, err := WriteExport(sampleChart(), "md", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "weekly_dubstep_chart.md" {
			t.Errorf("unexpected derived filename %q", got)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{59000, "0:59"},
		{60000, "1:00"},
		{254000, "4:14"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.ms); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestRenderChartTable(t *testing.T) {
	t.Run("With Tracks", func(t *testing.T) {
		out := RenderChartTable(sampleChart())
		for _, want := range []string{"Weekly Dubstep Chart", "Skream", "Digital Mystikz", "Title", "Artist"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in table output", want)
			}
		}
	})

	t.Run("Empty Chart", func(t *testing.T) {
		out := RenderChartTable(&Chart{Title: "Empty"})
		if !strings.Contains(out, "no tracks") {
			t.Error("expected empty chart placeholder")
		}
	})
}
