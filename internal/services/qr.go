package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/constants"
	apperrors "upi-qr-pay/internal/errors"
	"upi-qr-pay/internal/models"
)

var captionGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// LogoProvider supplies the image pasted at the centre of the code.
// A nil image with a nil error means no logo is configured.
type LogoProvider interface {
	Logo() (image.Image, error)
}

// Composition is the result of composing a payment QR image
type Composition struct {
	PNG     []byte
	Width   int
	Height  int
	Warning string
}

// QRService composes payment QR images
type QRService struct {
	boxSize        int
	logoSize       int
	face           font.Face
	currencySymbol string
	ellipsis       string
	logger         *logrus.Logger
}

// NewQRService creates a new QR code service
func NewQRService(cfg config.RenderConfig, fonts *FontLoader, logger *logrus.Logger) *QRService {
	face, _ := fonts.Load()

	symbol := constants.RupeeSymbol
	if !hasGlyph(face, []rune(symbol)[0]) {
		symbol = constants.RupeeFallback
	}

	ellipsis := constants.CaptionEllipsis
	if !hasGlyph(face, []rune(ellipsis)[0]) {
		ellipsis = constants.CaptionEllipsisASCII
	}

	boxSize := cfg.BoxSize
	if boxSize < 1 {
		boxSize = constants.DefaultBoxSize
	}

	return &QRService{
		boxSize:        boxSize,
		logoSize:       cfg.LogoSize,
		face:           face,
		currencySymbol: symbol,
		ellipsis:       ellipsis,
		logger:         logger,
	}
}

// Compose encodes the intent's URI, overlays the logo and appends the caption.
// Logo problems are reported in Composition.Warning and never abort the image.
func (s *QRService) Compose(intent models.PaymentIntent, logos LogoProvider) (*Composition, error) {
	uri := intent.URI()
	s.logger.Debugf("Generating QR code for URI: %s", uri)

	qr, err := qrcode.New(uri, qrcode.Highest)
	if err != nil {
		s.logger.Errorf("Failed to encode QR code: %v", err)
		return nil, &apperrors.CompositionError{Stage: "encode", Err: err}
	}

	// A negative size renders each module at exactly boxSize pixels
	code := imaging.Clone(qr.Image(-s.boxSize))
	symbolWidth := (len(qr.Bitmap()) - 2*constants.QuietZoneModules) * s.boxSize

	result := &Composition{}
	if logos != nil {
		withLogo, err := s.overlayLogo(code, logos, symbolWidth)
		if err != nil {
			s.logger.Warnf("Could not use logo: %v", err)
			result.Warning = fmt.Sprintf("Could not use logo: %v", err)
		} else {
			code = withLogo
		}
	}

	final := s.appendCaption(code, intent)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, final, imaging.PNG); err != nil {
		s.logger.Errorf("Failed to encode PNG: %v", err)
		return nil, &apperrors.CompositionError{Stage: "png", Err: err}
	}

	result.PNG = buf.Bytes()
	result.Width = final.Bounds().Dx()
	result.Height = final.Bounds().Dy()
	return result, nil
}

// LogoSide returns the pasted logo size for a symbol of the given width
func (s *QRService) LogoSide(symbolWidth int) int {
	side := s.logoSize
	if limit := int(float64(symbolWidth) * constants.MaxLogoFraction); side > limit {
		side = limit
	}
	return side
}

// CurrencySymbol returns the symbol printed in captions
func (s *QRService) CurrencySymbol() string {
	return s.currencySymbol
}

func (s *QRService) overlayLogo(code *image.NRGBA, logos LogoProvider, symbolWidth int) (*image.NRGBA, error) {
	logo, err := logos.Logo()
	if err != nil {
		return nil, err
	}
	if logo == nil {
		return code, nil
	}

	b := logo.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("logo image is empty")
	}

	side := s.LogoSide(symbolWidth)
	if side <= 0 {
		return code, nil
	}

	resized := imaging.Resize(logo, side, side, imaging.Lanczos)
	pos := image.Pt((code.Bounds().Dx()-side)/2, (code.Bounds().Dy()-side)/2)
	return imaging.Overlay(code, resized, pos, 1.0), nil
}

func (s *QRService) appendCaption(code *image.NRGBA, intent models.PaymentIntent) *image.NRGBA {
	width := code.Bounds().Dx()
	maxTextWidth := width - 2*constants.CaptionSideMargin

	text1, text2 := intent.Caption(s.currencySymbol)
	line1 := s.fitLine(text1, maxTextWidth)
	line2 := s.fitLine(text2, maxTextWidth)

	codeHeight := code.Bounds().Dy()
	bandHeight := line1.height() + line2.height() + constants.CaptionBandPadding

	final := imaging.New(width, codeHeight+bandHeight, color.White)
	final = imaging.Paste(final, code, image.Pt(0, 0))

	s.drawLine(final, line1, image.NewUniform(color.Black), codeHeight+constants.CaptionTopOffset)
	if intent.HasNote() {
		s.drawLine(final, line2, image.NewUniform(captionGray), codeHeight+line1.height()+constants.CaptionLineSpacing)
	}

	return final
}

// fitLine measures text and shortens it with an ellipsis until it fits maxWidth
func (s *QRService) fitLine(text string, maxWidth int) textLine {
	line := measure(s.face, text)
	if line.width() <= maxWidth {
		return line
	}

	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := measure(s.face, strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace)+s.ellipsis)
		if candidate.width() <= maxWidth {
			return candidate
		}
	}
	return measure(s.face, s.ellipsis)
}

func (s *QRService) drawLine(dst *image.NRGBA, line textLine, src image.Image, top int) {
	x := max((dst.Bounds().Dx()-line.width())/2, 0)
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: s.face,
		Dot:  line.dot(x, top),
	}
	d.DrawString(line.text)
}
