package flyer

import (
	"image"
	"strings"

	"github.com/fogleman/gg"

	"github.com/loganlanou/snapsell/internal/listing"
)

// Marketplace layout: 800x1200 cream canvas with an upper-cased title,
// feature bullets, price and location lines, a call-to-action and a share
// icon glyph.
const (
	marketplaceWidth  = 800
	marketplaceHeight = 1200

	marketplaceImageTop    = 120
	marketplaceImageHeight = 400
	marketplaceImageMargin = 80

	marketplaceShareIconSize = 40

	defaultTitle = "ITEM FOR SALE"
	defaultCTA   = "DM for details"

	listingMarker = "Create a marketplace listing for:"
)

// MarketplaceFlyer holds the inputs for the marketplace layout. Structured
// fields left empty are scavenged from Prompt using the same labeled-section
// rules as the field extractor.
type MarketplaceFlyer struct {
	Image       image.Image
	Title       string
	Features    []string
	Price       string
	Location    string
	ContactInfo string
	Style       Style
	Prompt      string
}

// RenderMarketplace draws the marketplace flyer layout. Every Style currently
// selects this one look. Rendering never fails.
func (r *Renderer) RenderMarketplace(f MarketplaceFlyer) image.Image {
	f = f.withScavengedFields()

	dc := gg.NewContext(marketplaceWidth, marketplaceHeight)
	dc.SetColor(creamColor)
	dc.Clear()

	r.drawCentered(dc, strings.ToUpper(f.Title), 70, r.fonts.Bold(48), tealColor)

	placed := r.drawFittedImage(dc, f.Image, marketplaceImageTop, marketplaceImageHeight, marketplaceImageMargin, 5, 3)

	body := r.fonts.Regular(22)
	dc.SetFontFace(body)
	dc.SetColor(blackColor)
	bulletY := float64(placed.Max.Y + 60)
	for _, feature := range f.Features {
		dc.DrawString("- "+feature, 40, bulletY+faceHeight(body))
		bulletY += 40
	}

	priceY := bulletY + 40
	priceFace := r.fonts.Bold(30)
	dc.SetFontFace(priceFace)
	dc.SetColor(tealColor)
	dc.DrawString("Price: Rs. "+FormatPrice(f.Price), 40, priceY+faceHeight(priceFace))

	if f.Location != "" {
		locationY := priceY + 60
		dc.SetFontFace(body)
		dc.SetColor(blackColor)
		dc.DrawString("Location: "+f.Location, 40, locationY+faceHeight(body))
	}

	cta := f.ContactInfo
	if cta == "" {
		cta = defaultCTA
	}
	ctaY := float64(marketplaceHeight - 150)
	ctaFace := r.fonts.SemiBold(24)
	dc.SetFontFace(ctaFace)
	dc.SetColor(blackColor)
	dc.DrawString(cta, 40, ctaY+faceHeight(ctaFace))

	// Share-app icon stand-in.
	iconX := float64(marketplaceWidth - 80)
	dc.SetColor(greenColor)
	dc.DrawCircle(iconX+marketplaceShareIconSize/2, ctaY+marketplaceShareIconSize/2, marketplaceShareIconSize/2)
	dc.Fill()

	r.drawFooter(dc, marketplaceHeight-40, r.fonts.Regular(16))

	return dc.Image()
}

// withScavengedFields fills missing structured fields from the instruction
// string, reproducing the field extractor's segmenting rules via the shared
// listing parser.
func (f MarketplaceFlyer) withScavengedFields() MarketplaceFlyer {
	if f.Title == "" {
		if _, rest, ok := strings.Cut(f.Prompt, listingMarker); ok {
			f.Title = strings.TrimSpace(firstLine(rest))
		}
		if f.Title == "" {
			f.Title = defaultTitle
		}
	}

	if len(f.Features) == 0 {
		if strings.Contains(f.Prompt, "Features:") {
			f.Features = listing.BulletLines(listing.Section(f.Prompt, "Features:"))
		}
		if len(f.Features) == 0 {
			f.Features = []string{listing.DefaultFeature}
		}
	}

	if f.Price == "" {
		f.Price = listing.DigitsOnly(listing.Field(f.Prompt, "Price:"))
		if f.Price == "" {
			f.Price = listing.DefaultPrice
		}
	}

	if f.Location == "" && strings.Contains(f.Prompt, "Location:") {
		f.Location = listing.Field(f.Prompt, "Location:")
	}

	return f
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
