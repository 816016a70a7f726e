package flyer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSet is the resolved font family used for all flyer text. The custom
// Montserrat family is probed exactly once at construction; if any weight is
// missing the whole set degrades to the bundled Go fonts, and if even those
// fail to parse every face degrades to a fixed bitmap font. Construction and
// face lookup never fail.
type FontSet struct {
	bold     *truetype.Font
	semibold *truetype.Font
	regular  *truetype.Font

	// Custom reports whether the Montserrat family was loaded.
	Custom bool
}

// LoadFontSet resolves the flyer font family. dir may be empty to skip the
// custom family probe entirely.
func LoadFontSet(dir string) *FontSet {
	fs := &FontSet{}

	if dir != "" {
		if err := fs.loadCustomFamily(dir); err == nil {
			fs.Custom = true
			return fs
		} else {
			slog.Debug("custom font family unavailable, using bundled fonts", "dir", dir, "error", err)
		}
	}

	fs.bold = parseTTF(gobold.TTF)
	fs.semibold = parseTTF(gomedium.TTF)
	fs.regular = parseTTF(goregular.TTF)
	return fs
}

func (fs *FontSet) loadCustomFamily(dir string) error {
	var err error
	if fs.bold, err = parseFile(filepath.Join(dir, "Montserrat-Bold.ttf")); err != nil {
		return err
	}
	if fs.semibold, err = parseFile(filepath.Join(dir, "Montserrat-SemiBold.ttf")); err != nil {
		return err
	}
	if fs.regular, err = parseFile(filepath.Join(dir, "Montserrat-Regular.ttf")); err != nil {
		return err
	}
	return nil
}

// Bold returns the bold face at the given point size.
func (fs *FontSet) Bold(size float64) font.Face { return face(fs.bold, size) }

// SemiBold returns the semibold face at the given point size.
func (fs *FontSet) SemiBold(size float64) font.Face { return face(fs.semibold, size) }

// Regular returns the regular face at the given point size.
func (fs *FontSet) Regular(size float64) font.Face { return face(fs.regular, size) }

func face(f *truetype.Font, size float64) font.Face {
	if f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func parseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

func parseTTF(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		slog.Error("failed to parse bundled font", "error", err)
		return nil
	}
	return f
}
