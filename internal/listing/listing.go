// Package listing holds the structured fields describing an item for sale and
// the labeled-line parsing used to recover them from model output. The vision
// analyzer and the flyer compositor's prompt-scavenging path both go through
// the parsing functions here so the segmenting rules cannot drift apart.
package listing

import (
	"strings"
)

const (
	// DefaultPrice is substituted when a price field has no digits at all.
	DefaultPrice = "1000"

	// DefaultFeature is used when neither a Features section nor a
	// Description field can be found.
	DefaultFeature = "Quality item in good condition"

	descriptionPreviewLen = 40
)

// Fields is the structured listing derived from model output or user edits.
type Fields struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Features []string `json:"features"`
	Price    string   `json:"price"`
	Location string   `json:"location"`
}

// knownLabels are the section markers understood by the labeled-line format.
// A section extends from its label to the first occurrence of any other label.
var knownLabels = []string{
	"Category:",
	"Title:",
	"Features:",
	"Description:",
	"Price:",
	"Location:",
	"Condition:",
	"Brand:",
	"Age:",
}

// Field returns the value of a single-line labeled field: the text after the
// first occurrence of label on a line that starts with it (ignoring
// surrounding whitespace), with any trailing colon stripped. Empty string if
// the label never appears.
func Field(text, label string) string {
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), label) {
			continue
		}
		_, value, _ := strings.Cut(line, label)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, ":")
		return strings.TrimSpace(value)
	}
	return ""
}

// Section returns the block of text between the first occurrence of label and
// the next known label, or the rest of the text if no other label follows.
// The label itself is not included. Returns "" when the label is absent.
func Section(text, label string) string {
	idx := strings.Index(text, label)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(label):]

	end := len(rest)
	for _, other := range knownLabels {
		if other == label {
			continue
		}
		if i := strings.Index(rest, other); i >= 0 && i < end {
			end = i
		}
	}
	return strings.TrimSpace(rest[:end])
}

// BulletLines splits a section into its bullet entries, stripping the leading
// dash and whitespace from each line and dropping lines that end up empty.
// Order is preserved.
func BulletLines(section string) []string {
	var items []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// DigitsOnly strips everything but decimal digits, so "₹1,500" and
// "Rs. 2000/-" both reduce to their numeric core.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse extracts listing fields from a labeled-line text block. Missing or
// malformed fields degrade to documented defaults; Parse itself never fails.
func Parse(text string) Fields {
	f := Fields{
		Category: Field(text, "Category:"),
		Title:    Field(text, "Title:"),
	}

	if strings.Contains(text, "Features:") {
		f.Features = BulletLines(Section(text, "Features:"))
	}
	if len(f.Features) == 0 {
		// No usable Features section; fall back to a truncated
		// Description, then to the fixed default.
		if desc := Field(text, "Description:"); desc != "" {
			f.Features = []string{truncate(desc, descriptionPreviewLen) + "..."}
		} else {
			f.Features = []string{DefaultFeature}
		}
	}

	f.Price = DigitsOnly(Field(text, "Price:"))
	if f.Price == "" {
		f.Price = DefaultPrice
	}

	if strings.Contains(text, "Location:") {
		f.Location = Field(text, "Location:")
	}

	return f
}

// Fallback is the complete listing used when analysis is skipped or fails.
func Fallback() Fields {
	return Fields{
		Category: "General Item",
		Title:    "Quality Second-hand Item",
		Features: []string{
			"Good condition",
			"Well maintained",
			"Ready for immediate use",
		},
		Price:    DefaultPrice,
		Location: "Not specified",
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
