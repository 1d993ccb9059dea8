package models

import (
	"strings"
	"testing"
)

func TestPaymentIntentURI(t *testing.T) {
	tests := []struct {
		name   string
		intent PaymentIntent
		want   string
	}{
		{
			name:   "without note",
			intent: PaymentIntent{PayeeID: "7840030011@ptsbi", PayeeName: "Arshdeep Singh Gill", Amount: "150.50", Currency: "INR"},
			want:   "upi://pay?pa=7840030011@ptsbi&pn=Arshdeep%20Singh%20Gill&am=150.50&cu=INR",
		},
		{
			name:   "with note",
			intent: PaymentIntent{PayeeID: "a@b", PayeeName: "A", Amount: "1", Note: "rent & food", Currency: "INR"},
			want:   "upi://pay?pa=a@b&pn=A&am=1&cu=INR&tn=rent%20%26%20food",
		},
		{
			name:   "default currency",
			intent: PaymentIntent{PayeeID: "a@b", PayeeName: "A", Amount: "10"},
			want:   "upi://pay?pa=a@b&pn=A&am=10&cu=INR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.intent.URI(); got != tt.want {
				t.Errorf("URI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaymentIntentCaption(t *testing.T) {
	p := PaymentIntent{PayeeName: "Arshdeep Singh Gill", Amount: "99"}

	line1, line2 := p.Caption("₹")
	if line1 != "Pay ₹99 to Arshdeep Singh Gill" {
		t.Errorf("unexpected first line: %q", line1)
	}
	if line2 != "" || p.HasNote() {
		t.Errorf("expected no second line, got %q", line2)
	}

	p.Note = "Lunch"
	_, line2 = p.Caption("Rs.")
	if line2 != "Lunch" || !p.HasNote() {
		t.Errorf("expected note line, got %q", line2)
	}
}

func TestGeneratedImageURL(t *testing.T) {
	img := GeneratedImage{ID: "abc123"}
	if got := img.URL(); !strings.HasPrefix(got, "/qr/") || !strings.HasSuffix(got, ".png") {
		t.Errorf("unexpected URL %q", got)
	}
}
