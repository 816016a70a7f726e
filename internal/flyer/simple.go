package flyer

import (
	"image"

	"github.com/fogleman/gg"
)

// Simple layout: 1200x1600 canvas with a teal header band, the item photo,
// wrapped title/category/description and a filled price panel.
const (
	simpleWidth  = 1200
	simpleHeight = 1600

	simpleHeaderHeight = 120
	simpleImageTop     = 180
	simpleImageHeight  = 600
	simpleImageMargin  = 100

	simplePricePanelWidth  = 300
	simplePricePanelHeight = 100
)

// SimpleFlyer holds the inputs for the simple layout.
type SimpleFlyer struct {
	Image       image.Image
	Title       string
	Category    string
	Description string
	Price       string
}

// RenderSimple draws the simple flyer layout. Rendering is deterministic for
// fixed inputs (aside from the dated footer) and never fails.
func (r *Renderer) RenderSimple(f SimpleFlyer) image.Image {
	dc := gg.NewContext(simpleWidth, simpleHeight)
	dc.SetColor(whiteColor)
	dc.Clear()

	// Header band with the app name.
	dc.SetColor(tealColor)
	dc.DrawRectangle(0, 0, simpleWidth, simpleHeaderHeight)
	dc.Fill()
	r.drawCentered(dc, appName, simpleHeaderHeight/2, r.fonts.Bold(36), whiteColor)

	placed := r.drawFittedImage(dc, f.Image, simpleImageTop, simpleImageHeight, simpleImageMargin, 10, 5)

	titleY := float64(placed.Max.Y + 50)
	bottom := r.drawWrapped(dc, f.Title, 60, titleY, simpleWidth-120, r.fonts.SemiBold(28), blackColor)

	categoryY := bottom + 30
	dc.SetFontFace(r.fonts.Regular(22))
	dc.SetColor(grayColor)
	dc.DrawString("Category: "+f.Category, 60, categoryY+faceHeight(r.fonts.Regular(22)))

	descY := categoryY + 50
	bottom = r.drawWrapped(dc, f.Description, 60, descY, simpleWidth-120, r.fonts.Regular(22), blackColor)

	// Price panel, centered horizontally.
	panelY := bottom + 80
	dc.SetColor(tealColor)
	dc.DrawRectangle(simpleWidth/2-simplePricePanelWidth/2, panelY, simplePricePanelWidth, simplePricePanelHeight)
	dc.Fill()
	r.drawCentered(dc, "Rs. "+FormatPrice(f.Price), panelY+simplePricePanelHeight/2, r.fonts.Bold(48), whiteColor)

	r.drawFooter(dc, simpleHeight-60, r.fonts.Regular(18))

	return dc.Image()
}
