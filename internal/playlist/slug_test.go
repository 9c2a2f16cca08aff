package playlist

import "testing"

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and hyphenates spaces", "Sports HD", "sports-hd"},
		{"collapses interior whitespace runs", "  Sports  HD  ", "sports-hd"},
		{"folds diacritics", "Documentários", "documentarios"},
		{"drops punctuation", "News & Weather!", "news-weather"},
		{"collapses hyphen runs", "a - b", "a-b"},
		{"trims edge hyphens", "-edge-", "edge"},
		{"keeps digits and underscores", "Top_10 2024", "top_10-2024"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"punctuation only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorySlug(tt.input); got != tt.want {
				t.Errorf("CategorySlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestChannelSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"removes spaces without hyphens", "ESPN HD", "espnhd"},
		{"lowercases", "Globo", "globo"},
		{"folds diacritics", "História", "historia"},
		{"drops punctuation and symbols", "TV! 2 (Alt)", "tv2alt"},
		{"keeps underscores", "my_channel", "my_channel"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelSlug(tt.input); got != tt.want {
				t.Errorf("ChannelSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
