package listing

import (
	"reflect"
	"testing"
)

const wellFormed = `Category: Furniture
Title: Old Chair
Features:
- Sturdy
- Wooden
Price: 1500
Location: Mumbai`

func TestParseWellFormed(t *testing.T) {
	fields := Parse(wellFormed)

	if fields.Category != "Furniture" {
		t.Errorf("Category = %q, want %q", fields.Category, "Furniture")
	}
	if fields.Title != "Old Chair" {
		t.Errorf("Title = %q, want %q", fields.Title, "Old Chair")
	}
	if want := []string{"Sturdy", "Wooden"}; !reflect.DeepEqual(fields.Features, want) {
		t.Errorf("Features = %v, want %v", fields.Features, want)
	}
	if fields.Price != "1500" {
		t.Errorf("Price = %q, want %q", fields.Price, "1500")
	}
	if fields.Location != "Mumbai" {
		t.Errorf("Location = %q, want %q", fields.Location, "Mumbai")
	}
}

func TestParsePriceCleaning(t *testing.T) {
	tests := []struct {
		name     string
		rawPrice string
		want     string
	}{
		{"rupee symbol and comma", "₹1,500", "1500"},
		{"Rs prefix and slash", "Rs. 2000/-", "2000"},
		{"plain digits", "750", "750"},
		{"no digits at all", "contact seller", DefaultPrice},
		{"empty", "", DefaultPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Parse("Title: Item\nPrice: " + tt.rawPrice)
			if fields.Price != tt.want {
				t.Errorf("Price = %q, want %q", fields.Price, tt.want)
			}
		})
	}
}

func TestParseMissingPrice(t *testing.T) {
	fields := Parse("Category: Books\nTitle: Novel")
	if fields.Price != DefaultPrice {
		t.Errorf("Price = %q, want default %q", fields.Price, DefaultPrice)
	}
}

func TestParseFeaturesFallbackChain(t *testing.T) {
	t.Run("description becomes single truncated feature", func(t *testing.T) {
		long := "A very comfortable armchair with original upholstery and minor wear"
		fields := Parse("Title: Chair\nDescription: " + long + "\nPrice: 900")
		if len(fields.Features) != 1 {
			t.Fatalf("Features = %v, want one entry", fields.Features)
		}
		want := long[:40] + "..."
		if fields.Features[0] != want {
			t.Errorf("Features[0] = %q, want %q", fields.Features[0], want)
		}
	})

	t.Run("no features or description yields fixed default", func(t *testing.T) {
		fields := Parse("Title: Chair\nPrice: 900")
		if len(fields.Features) != 1 || fields.Features[0] != DefaultFeature {
			t.Errorf("Features = %v, want [%q]", fields.Features, DefaultFeature)
		}
	})

	t.Run("empty features section yields fixed default", func(t *testing.T) {
		fields := Parse("Title: Chair\nFeatures:\nPrice: 900")
		if len(fields.Features) != 1 || fields.Features[0] != DefaultFeature {
			t.Errorf("Features = %v, want [%q]", fields.Features, DefaultFeature)
		}
	})
}

func TestParseLocationAbsent(t *testing.T) {
	fields := Parse("Title: Chair\nPrice: 900")
	if fields.Location != "" {
		t.Errorf("Location = %q, want empty", fields.Location)
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		want  string
	}{
		{"simple", "Category: Toys", "Category:", "Toys"},
		{"indented line", "  Title:  Wooden Train  ", "Title:", "Wooden Train"},
		{"label missing", "Category: Toys", "Brand:", ""},
		{"value only on matching line", "Notes about Price: later\nPrice: 500", "Price:", "500"},
		{"trailing colon stripped", "Title: Chess Set:", "Title:", "Chess Set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.text, tt.label); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSectionBoundaries(t *testing.T) {
	text := "Features:\n- One\n- Two\nPrice: 100\nLocation: Pune"

	section := Section(text, "Features:")
	if want := "- One\n- Two"; section != want {
		t.Errorf("Section() = %q, want %q", section, want)
	}

	// Section runs to the end when no other label follows.
	if got := Section("Features:\n- Solo", "Features:"); got != "- Solo" {
		t.Errorf("Section() = %q, want %q", got, "- Solo")
	}

	if got := Section(text, "Brand:"); got != "" {
		t.Errorf("Section() for absent label = %q, want empty", got)
	}
}

func TestBulletLines(t *testing.T) {
	got := BulletLines("- Sturdy\n-- Double dashed\n\n   - Spaced   \n-\nplain line")
	want := []string{"Sturdy", "Double dashed", "Spaced", "plain line"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BulletLines() = %v, want %v", got, want)
	}
}

func TestFallback(t *testing.T) {
	fields := Fallback()

	if fields.Category != "General Item" {
		t.Errorf("Category = %q", fields.Category)
	}
	if fields.Title != "Quality Second-hand Item" {
		t.Errorf("Title = %q", fields.Title)
	}
	if len(fields.Features) != 3 {
		t.Errorf("Features = %v, want three entries", fields.Features)
	}
	if fields.Price != DefaultPrice {
		t.Errorf("Price = %q, want %q", fields.Price, DefaultPrice)
	}
	if fields.Location != "Not specified" {
		t.Errorf("Location = %q, want %q", fields.Location, "Not specified")
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("₹1,500/- approx"); got != "1500" {
		t.Errorf("DigitsOnly() = %q, want %q", got, "1500")
	}
	if got := DigitsOnly("no numbers"); got != "" {
		t.Errorf("DigitsOnly() = %q, want empty", got)
	}
}
