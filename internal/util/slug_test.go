package util

import (
	"strings"
	"testing"
)

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Simple", "smith", "smith"},
		{"SpacesAndPunctuation", "John Doe!!", "john-doe"},
		{"RepeatedHyphens", "a---b", "a-b"},
		{"MixedSeparatorRun", "a -_. b", "a-b"},
		{"Uppercase", "The STARKS", "the-starks"},
		{"LeadingTrailingJunk", "  --hello--  ", "hello"},
		{"Numbers", "family 2024", "family-2024"},
		{"Empty", "", "family"},
		{"OnlyPunctuation", "!!!", "family"},
		{"Unicode", "fämily", "f-mily"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeSlug(tc.in)
			if got != tc.want {
				t.Fatalf("SanitizeSlug(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeSlugLengthCap(t *testing.T) {
	got := SanitizeSlug(strings.Repeat("a", 200))
	if len(got) != 64 {
		t.Fatalf("expected 64-char cap, got %d chars", len(got))
	}

	// A hyphen landing on the cut point must not survive as a trailing dash.
	got = SanitizeSlug(strings.Repeat("a", 63) + "-" + strings.Repeat("b", 100))
	if strings.HasSuffix(got, "-") {
		t.Fatalf("trailing hyphen after truncation: %q", got)
	}
}
