package flyergen

import (
	"strings"
)

// defaultEditPrompt is used when flyer generation is requested with no
// instruction at all.
const defaultEditPrompt = "Create a flyer to sell this product in WhatsApp or Facebook Marketplace"

const flyerFocusSuffix = "\n\nCreate a visually appealing marketplace flyer based on this information."

// PromptInput carries the listing details for BuildPrompt. Title, Features
// and Price are the core fields; everything else is optional and omitted from
// the prompt when empty.
type PromptInput struct {
	Title          string
	Features       []string
	Price          string
	Location       string
	Category       string
	Condition      string
	Brand          string
	Age            string
	AdditionalInfo string
}

// BuildPrompt assembles the image-generation instruction from listing fields.
// The line order is fixed and the output is byte-identical for identical
// input; absent optional fields simply drop their line.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Create a marketplace listing for: " + in.Title)

	if in.Category != "" {
		b.WriteString("\nCategory: " + in.Category)
	}

	if len(in.Features) > 0 {
		b.WriteString("\nFeatures:")
		for _, feature := range in.Features {
			b.WriteString("\n- " + feature)
		}
	}

	b.WriteString("\nPrice: ₹" + in.Price)

	if in.Location != "" {
		b.WriteString("\nLocation: " + in.Location)
	}
	if in.Condition != "" {
		b.WriteString("\nCondition: " + in.Condition)
	}
	if in.Brand != "" {
		b.WriteString("\nBrand: " + in.Brand)
	}
	if in.Age != "" {
		b.WriteString("\nAge: " + in.Age)
	}
	if in.AdditionalInfo != "" {
		b.WriteString("\nAdditional Information: " + in.AdditionalInfo)
	}

	b.WriteString("\n\nPlease create a visually appealing marketplace listing flyer based on the above information.")

	return b.String()
}

// forImageEdit adapts an instruction for the image edit endpoint: an empty
// instruction gets the default prompt, and one that never mentions a flyer or
// marketplace gets a closing sentence steering the model toward one. This
// mutation happens here, at the point of use, not in BuildPrompt.
func forImageEdit(prompt string) string {
	if prompt == "" {
		return defaultEditPrompt
	}
	lower := strings.ToLower(prompt)
	if !strings.Contains(lower, "flyer") && !strings.Contains(lower, "marketplace") {
		return prompt + flyerFocusSuffix
	}
	return prompt
}
