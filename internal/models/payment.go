package models

import (
	"fmt"
	"net/url"
	"strings"

	"upi-qr-pay/internal/constants"
)

// PaymentIntent is a single request to be paid, built per request and never persisted
type PaymentIntent struct {
	PayeeID   string
	PayeeName string
	Amount    string
	Note      string
	Currency  string
}

// URI returns the UPI deep link encoded into the QR code.
// Parameters keep the pa, pn, am, cu order scanner apps expect; tn is appended for a note.
func (p PaymentIntent) URI() string {
	currency := p.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	var sb strings.Builder
	sb.WriteString(constants.UPIScheme)
	sb.WriteString("://pay?pa=")
	sb.WriteString(escape(p.PayeeID))
	sb.WriteString("&pn=")
	sb.WriteString(escape(p.PayeeName))
	sb.WriteString("&am=")
	sb.WriteString(escape(p.Amount))
	sb.WriteString("&cu=")
	sb.WriteString(escape(currency))
	if p.Note != "" {
		sb.WriteString("&tn=")
		sb.WriteString(escape(p.Note))
	}
	return sb.String()
}

// Caption returns the text lines printed under the code. The second line is empty without a note.
func (p PaymentIntent) Caption(currencySymbol string) (string, string) {
	return fmt.Sprintf("Pay %s%s to %s", currencySymbol, p.Amount, p.PayeeName), p.Note
}

// HasNote reports whether a second caption line is needed
func (p PaymentIntent) HasNote() bool {
	return p.Note != ""
}

// escape encodes a query value with %20 for spaces; '@' stays literal since VPAs carry it
func escape(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}
