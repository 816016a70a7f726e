package flyer

import (
	"strconv"
	"strings"
)

var priceCleaner = strings.NewReplacer(",", "", "Rs.", "", "₹", "")

// FormatPrice renders a price using the South Asian digit-grouping convention:
// the rightmost three digits form a group, every group after that has two
// digits ("1,00,000" for 100000). Currency markers and thousands separators in
// the input are stripped before parsing. Values under 1000 get no grouping.
// Non-numeric or negative input is returned unchanged.
func FormatPrice(price string) string {
	cleaned := strings.TrimSpace(priceCleaner.Replace(price))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return price
	}

	s := strconv.FormatInt(int64(value), 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	groups := []string{tail}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",")
}

// WrapText greedily wraps text into lines whose measured width stays within
// maxWidth. A word wider than maxWidth gets a line of its own. Word order is
// preserved and no words are dropped.
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
