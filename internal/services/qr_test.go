package services

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/constants"
	"upi-qr-pay/internal/models"
)

func testIntent(amount, note string) models.PaymentIntent {
	return models.PaymentIntent{
		PayeeID:   testPayee.ID,
		PayeeName: testPayee.Name,
		Amount:    amount,
		Note:      note,
		Currency:  testPayee.Currency,
	}
}

func TestComposeDecodesToPaymentURI(t *testing.T) {
	svc := newTestQRService(t)

	for _, amount := range []string{"1", "150.50", "99999.99", "0.01"} {
		t.Run(amount, func(t *testing.T) {
			intent := testIntent(amount, "")
			result, err := svc.Compose(intent, nil)
			if err != nil {
				t.Fatalf("Compose() error: %v", err)
			}

			text := decodeQR(t, decodePNG(t, result.PNG))
			if text != intent.URI() {
				t.Errorf("decoded %q, want %q", text, intent.URI())
			}
			if !strings.Contains(text, "am="+amount+"&") {
				t.Errorf("decoded URI %q does not carry amount %s", text, amount)
			}
			if result.Warning != "" {
				t.Errorf("unexpected warning %q", result.Warning)
			}
		})
	}
}

func TestComposeNoteAddsSecondLine(t *testing.T) {
	svc := newTestQRService(t)

	without, err := svc.Compose(testIntent("100", ""), nil)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	with, err := svc.Compose(testIntent("100", "Rent"), nil)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if with.Width != without.Width {
		t.Errorf("caption should not change width: %d vs %d", with.Width, without.Width)
	}
	if with.Height <= without.Height {
		t.Errorf("expected taller image with note: %d <= %d", with.Height, without.Height)
	}

	if countColor(decodePNG(t, without.PNG), captionGray) != 0 {
		t.Error("expected no gray note text without a note")
	}
	if countColor(decodePNG(t, with.PNG), captionGray) == 0 {
		t.Error("expected gray note text with a note")
	}
}

func TestComposeCaptionBandIsBelowCode(t *testing.T) {
	svc := newTestQRService(t)

	result, err := svc.Compose(testIntent("42", ""), nil)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if result.Height <= result.Width {
		t.Errorf("expected caption band to extend height beyond the square code: %dx%d", result.Width, result.Height)
	}

	img := decodePNG(t, result.PNG)
	band := image.Rect(0, result.Width, result.Width, result.Height)
	if countColorIn(img, color.NRGBA{A: 255}, band) == 0 {
		t.Error("expected black caption text in the band below the code")
	}
}

func TestComposeLogoFailureKeepsImage(t *testing.T) {
	svc := newTestQRService(t)
	intent := testIntent("250", "Books")

	result, err := svc.Compose(intent, staticLogo{err: errors.New("cannot identify image file")})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if !strings.HasPrefix(result.Warning, "Could not use logo:") {
		t.Errorf("unexpected warning %q", result.Warning)
	}
	if text := decodeQR(t, decodePNG(t, result.PNG)); text != intent.URI() {
		t.Errorf("decoded %q, want %q", text, intent.URI())
	}
}

func TestComposeEmptyLogoIsWarning(t *testing.T) {
	svc := newTestQRService(t)

	result, err := svc.Compose(testIntent("5", ""), staticLogo{img: image.NewNRGBA(image.Rect(0, 0, 0, 0))})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected warning for empty logo")
	}
}

func TestComposeLogoPastedAtCenter(t *testing.T) {
	svc := newTestQRService(t)
	red := color.NRGBA{R: 255, A: 255}

	result, err := svc.Compose(testIntent("75", ""), staticLogo{img: solidImage(40, 40, red)})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning %q", result.Warning)
	}

	img := decodePNG(t, result.PNG)
	center := color.NRGBAModel.Convert(img.At(result.Width/2, result.Width/2)).(color.NRGBA)
	if center != red {
		t.Errorf("expected logo colour at centre, got %+v", center)
	}
	if countColor(img, red) == 0 {
		t.Error("expected logo pixels in output")
	}
}

func TestComposeWithLogoStillDecodes(t *testing.T) {
	svc := newTestQRService(t)
	logos := map[string]image.Image{
		"black": solidImage(300, 300, color.Black),
		"noise": noiseImage(300, 300, 42),
	}

	for logoName, logo := range logos {
		for _, amount := range []string{"1", "150.50", "99999.99"} {
			for _, note := range []string{"", "Rent"} {
				t.Run(logoName+"/"+amount+"/"+note, func(t *testing.T) {
					intent := testIntent(amount, note)
					result, err := svc.Compose(intent, staticLogo{img: logo})
					if err != nil {
						t.Fatalf("Compose() error: %v", err)
					}
					if result.Warning != "" {
						t.Fatalf("unexpected warning %q", result.Warning)
					}
					if text := decodeQR(t, decodePNG(t, result.PNG)); text != intent.URI() {
						t.Errorf("decoded %q, want %q", text, intent.URI())
					}
				})
			}
		}
	}
}

func TestComposeLongNoteIsShortened(t *testing.T) {
	fonts := NewFontLoader(nil, 20, quietLogger())
	svc := NewQRService(config.RenderConfig{BoxSize: 4, FontSize: 20}, fonts, quietLogger())
	note := strings.Repeat("n", 80)

	result, err := svc.Compose(testIntent("10", note), nil)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	maxWidth := result.Width - 2*constants.CaptionSideMargin
	line := svc.fitLine(note, maxWidth)
	if line.width() > maxWidth {
		t.Errorf("fitted line is %dpx wide, limit %d", line.width(), maxWidth)
	}
	if !strings.HasSuffix(line.text, "...") || len(line.text) >= len(note) {
		t.Errorf("expected shortened note with ellipsis, got %q", line.text)
	}

	img := decodePNG(t, result.PNG)
	leftEdge := image.Rect(0, result.Width, constants.CaptionSideMargin, result.Height)
	if countColorIn(img, captionGray, leftEdge) != 0 {
		t.Error("note text should not touch the left edge")
	}
	if text := decodeQR(t, img); !strings.Contains(text, "tn="+note) {
		t.Errorf("URI should carry the full note, got %q", text)
	}
}

func TestFitLineKeepsShortText(t *testing.T) {
	svc := newTestQRService(t)

	if line := svc.fitLine("Rent", 500); line.text != "Rent" {
		t.Errorf("expected text unchanged, got %q", line.text)
	}
	if line := svc.fitLine("", 500); line.width() != 0 {
		t.Errorf("expected empty line, got width %d", line.width())
	}
}

func TestLogoSideIsClamped(t *testing.T) {
	svc := newTestQRService(t)

	if got := svc.LogoSide(1000); got != 220 {
		t.Errorf("LogoSide(1000) = %d, want 220", got)
	}
	if got := svc.LogoSide(410); got != 123 {
		t.Errorf("LogoSide(410) = %d, want 123", got)
	}
	if got := svc.LogoSide(490); got != 147 {
		t.Errorf("LogoSide(490) = %d, want 147", got)
	}
}

func TestBitmapFontUsesRupeeFallback(t *testing.T) {
	svc := newTestQRService(t)
	if got := svc.CurrencySymbol(); got != "Rs." {
		t.Errorf("CurrencySymbol() = %q, want Rs.", got)
	}
}

func noiseImage(w, h int, seed int64) image.Image {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255})
		}
	}
	return img
}

func countColor(img image.Image, c color.NRGBA) int {
	return countColorIn(img, c, img.Bounds())
}

func countColorIn(img image.Image, c color.NRGBA, rect image.Rectangle) int {
	n := 0
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) == c {
				n++
			}
		}
	}
	return n
}
