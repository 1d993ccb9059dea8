package services

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// BuiltinFontName identifies the bitmap face used when no font file loads
const BuiltinFontName = "basicfont-7x13"

// FontLoader picks the first usable font from an ordered list of files
type FontLoader struct {
	paths  []string
	size   float64
	logger *logrus.Logger
}

// NewFontLoader creates a new font loader
func NewFontLoader(paths []string, size float64, logger *logrus.Logger) *FontLoader {
	return &FontLoader{
		paths:  paths,
		size:   size,
		logger: logger,
	}
}

// Load returns the first TrueType/OpenType face that parses, or the built-in bitmap face.
// It never fails.
func (l *FontLoader) Load() (font.Face, string) {
	for _, path := range l.paths {
		face, err := l.loadFile(path)
		if err != nil {
			l.logger.Debugf("Font %s unavailable: %v", path, err)
			continue
		}
		l.logger.Infof("Using caption font %s at %.0fpx", path, l.size)
		return face, path
	}

	l.logger.Warn("No caption font could be loaded, falling back to built-in bitmap font")
	return basicfont.Face7x13, BuiltinFontName
}

func (l *FontLoader) loadFile(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    l.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// hasGlyph checks if the face can render r.
// The bitmap face reports every rune as present, so its ranges are checked instead.
func hasGlyph(face font.Face, r rune) bool {
	if bitmap, ok := face.(*basicfont.Face); ok {
		for _, rng := range bitmap.Ranges {
			if r >= rng.Low && r < rng.High {
				return true
			}
		}
		return false
	}

	_, ok := face.GlyphAdvance(r)
	return ok
}

// textLine is a caption line measured against a face
type textLine struct {
	text   string
	bounds fixed.Rectangle26_6
}

func measure(face font.Face, text string) textLine {
	bounds, _ := font.BoundString(face, text)
	return textLine{text: text, bounds: bounds}
}

func (t textLine) width() int {
	if t.text == "" {
		return 0
	}
	return (t.bounds.Max.X - t.bounds.Min.X).Ceil()
}

func (t textLine) height() int {
	if t.text == "" {
		return 0
	}
	return (t.bounds.Max.Y - t.bounds.Min.Y).Ceil()
}

// dot returns the baseline origin that puts the top-left of the line's ink at (x, y)
func (t textLine) dot(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.I(x) - t.bounds.Min.X,
		Y: fixed.I(y) - t.bounds.Min.Y,
	}
}
