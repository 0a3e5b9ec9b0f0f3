package synthesis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_Table(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		duration float64
		want     float64
	}{
		{
			name:     "neutral text keeps base confidence",
			text:     "the weather report follows shortly",
			duration: 5,
			want:     0.4,
		},
		{
			name:     "filler words add up to the cap",
			text:     "um uh um uh you know",
			duration: 5,
			// five filler hits, bonus capped at +0.4
			want: 0.4 + 0.4,
		},
		{
			name:     "short low content segment",
			text:     "and then",
			duration: 1.0,
			want:     0.4 + 0.2,
		},
		{
			name:     "digits reduce confidence",
			text:     "the value was 42 percent",
			duration: 5,
			want:     0.4 - 0.15,
		},
		{
			name:     "promotional language",
			text:     "remember to check out the merch",
			duration: 5,
			want:     0.4 + 0.35,
		},
		{
			name:     "intro outro language",
			text:     "hey welcome back everyone",
			duration: 5,
			want:     0.4 + 0.25,
		},
		{
			name:     "technical language",
			text:     "the algorithm computes the answer",
			duration: 5,
			want:     0.4 - 0.1,
		},
		{
			name:     "clamped at one",
			text:     "um um um sponsor welcome back",
			duration: 1.5,
			// filler cap +0.4, promo +0.35, intro +0.25 -> clamp 1.0
			want: 1.0,
		},
		{
			name:     "filler substring counting",
			text:     "the sponsor helps",
			duration: 5,
			// "so" matches inside "sponsor", plus the promo bonus
			want: 0.4 + 0.15 + 0.35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(seg(tt.text, 0, tt.duration))
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_Bounds(t *testing.T) {
	texts := []string{
		"", "um", "1 2 3 4 5 6 7 8 9", "sponsor sponsor sponsor sponsor",
		"algorithm function variable method process system 123",
	}
	for _, text := range texts {
		got := Score(seg(text, 0, 1))
		if got < 0 || got > 1 {
			t.Errorf("Score(%q) = %v, outside [0,1]", text, got)
		}
	}
}
