package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/config"
)

var testPayee = config.PayeeConfig{
	ID:       "7840030011@ptsbi",
	Name:     "Arshdeep Singh Gill",
	Currency: "INR",
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestQRService uses the built-in bitmap font so results do not depend on installed fonts
func newTestQRService(t *testing.T) *QRService {
	t.Helper()
	fonts := NewFontLoader([]string{"/nonexistent/font.ttf"}, 20, quietLogger())
	return NewQRService(config.RenderConfig{BoxSize: 10, LogoSize: 220, FontSize: 20}, fonts, quietLogger())
}

func newTestRegistry(maxImages int) *ImageRegistry {
	return NewImageRegistry(config.RegistryConfig{
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
		MaxImages:       maxImages,
	}, quietLogger())
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	return img
}

func decodeQR(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("failed to build bitmap: %v", err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		t.Fatalf("failed to decode QR code: %v", err)
	}
	return result.GetText()
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

type staticLogo struct {
	img image.Image
	err error
}

func (s staticLogo) Logo() (image.Image, error) {
	return s.img, s.err
}
