package flyer

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{"under a thousand", "100", "100"},
		{"four digits", "1500", "1,500"},
		{"five digits", "12345", "12,345"},
		{"six digits", "123456", "1,23,456"},
		{"one lakh", "100000", "1,00,000"},
		{"one crore", "10000000", "1,00,00,000"},
		{"symbol and separator stripped", "₹1,500", "1,500"},
		{"rs marker stripped", "Rs. 2000", "2,000"},
		{"decimal truncated", "999.75", "999"},
		{"negative returned unchanged", "-500", "-500"},
		{"non-numeric returned unchanged", "call me", "call me"},
		{"empty returned unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice(%q) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}

func TestWrapTextProperty(t *testing.T) {
	gofakeit.Seed(11)

	// Fixed-width measure keeps the property easy to reason about.
	measure := func(s string) float64 { return float64(len(s)) * 8 }
	const maxWidth = 30 * 8 // 30 characters

	for i := 0; i < 50; i++ {
		text := gofakeit.Sentence(gofakeit.Number(1, 40))

		lines := WrapText(text, maxWidth, measure)

		for _, line := range lines {
			// No word in a gofakeit sentence is 30 chars wide, so every
			// line must fit.
			if measure(line) > maxWidth {
				t.Fatalf("line %q exceeds max width", line)
			}
		}

		rejoined := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
		original := strings.Join(strings.Fields(text), " ")
		if rejoined != original {
			t.Fatalf("word sequence changed:\noriginal: %q\nwrapped:  %q", original, rejoined)
		}
	}
}

func TestWrapTextOversizedWord(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }

	lines := WrapText("tiny supercalifragilisticexpialidocious end", 10, measure)
	want := []string{"tiny", "supercalifragilisticexpialidocious", "end"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if lines := WrapText("   ", 100, func(string) float64 { return 0 }); lines != nil {
		t.Errorf("WrapText on blank input = %v, want nil", lines)
	}
}
