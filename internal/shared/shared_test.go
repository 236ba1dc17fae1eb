package shared

import "testing"

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Midnight Tyrannosaurus",
			artist: "Code Pandorum",
			want:   "midnight tyrannosaurus|code pandorum",
		},
		{
			name:   "extra whitespace",
			title:  "  Bass   Cannon  ",
			artist: "  Flux   Pavilion  ",
			want:   "bass cannon|flux pavilion",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
