// Package flyer renders marketplace flyers deterministically from an item
// photo and listing fields. All drawing is local; no network access.
package flyer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const appName = "Snap & Sell"

// Flyer palette. Teal is the fixed accent color system-wide.
var (
	tealColor  = color.RGBA{0, 128, 128, 255}
	whiteColor = color.RGBA{255, 255, 255, 255}
	creamColor = color.RGBA{252, 252, 245, 255}
	grayColor  = color.RGBA{100, 100, 100, 255}
	blackColor = color.RGBA{0, 0, 0, 255}
	greenColor = color.RGBA{37, 211, 102, 255}
)

const lineSpacing = 1.5

// Style selects a flyer look. Only the modern layout is implemented; the
// other styles are accepted and currently render identically to modern.
type Style string

const (
	StyleModern   Style = "modern"
	StyleMinimal  Style = "minimal"
	StyleColorful Style = "colorful"
)

// ParseStyle normalizes a style name, defaulting to modern for anything
// unrecognized.
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleMinimal:
		return StyleMinimal
	case StyleColorful:
		return StyleColorful
	default:
		return StyleModern
	}
}

// Renderer draws flyers with a resolved font set. Safe to reuse across
// renders; each render works on its own canvas.
type Renderer struct {
	fonts *FontSet
}

func NewRenderer(fonts *FontSet) *Renderer {
	if fonts == nil {
		fonts = LoadFontSet("")
	}
	return &Renderer{fonts: fonts}
}

// fitImage scales source dimensions to targetH preserving aspect ratio, then
// clamps the width to maxW re-deriving the height from the clamped width.
func fitImage(srcW, srcH, targetH, maxW int) (w, h int) {
	w = srcW * targetH / srcH
	h = targetH
	if w > maxW {
		w = maxW
		h = srcH * w / srcW
	}
	return w, h
}

// drawFittedImage places img centered horizontally at y, fitted per fitImage,
// with a teal border around it. Returns the placed bounds.
func (r *Renderer) drawFittedImage(dc *gg.Context, img image.Image, y, targetH, margin, borderGap, borderWidth int) image.Rectangle {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	w, h := fitImage(srcW, srcH, targetH, dc.Width()-margin)
	x := (dc.Width() - w) / 2

	dc.SetColor(tealColor)
	dc.SetLineWidth(float64(borderWidth))
	dc.DrawRectangle(float64(x-borderGap), float64(y-borderGap), float64(w+2*borderGap), float64(h+2*borderGap))
	dc.Stroke()

	dc.Push()
	dc.Translate(float64(x), float64(y))
	dc.Scale(float64(w)/float64(srcW), float64(h)/float64(srcH))
	dc.DrawImage(img, 0, 0)
	dc.Pop()

	return image.Rect(x, y, x+w, y+h)
}

// drawWrapped draws text wrapped to maxWidth starting at (x, y), where y is
// the top of the first line. Returns the y just below the last line.
func (r *Renderer) drawWrapped(dc *gg.Context, text string, x, y, maxWidth float64, f font.Face, col color.Color) float64 {
	dc.SetFontFace(f)
	dc.SetColor(col)

	lines := WrapText(text, maxWidth, func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	})

	lineHeight := faceHeight(f) * lineSpacing
	for i, line := range lines {
		dc.DrawString(line, x, y+float64(i)*lineHeight+faceHeight(f))
	}
	return y + float64(len(lines))*lineHeight
}

func (r *Renderer) drawCentered(dc *gg.Context, text string, y float64, f font.Face, col color.Color) {
	dc.SetFontFace(f)
	dc.SetColor(col)
	dc.DrawStringAnchored(text, float64(dc.Width())/2, y, 0.5, 0.5)
}

// drawFooter draws the centered attribution line with the current date.
func (r *Renderer) drawFooter(dc *gg.Context, y float64, f font.Face) {
	footer := fmt.Sprintf("Created with %s - %s", appName, time.Now().Format("02 Jan 2006"))
	r.drawCentered(dc, footer, y, f, grayColor)
}

func faceHeight(f font.Face) float64 {
	return float64(f.Metrics().Height) / 64
}
