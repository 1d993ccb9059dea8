package helpers

import (
	"strings"
	"unicode"

	"upi-qr-pay/internal/constants"
)

// FormatDownloadName builds the suggested file name for a generated code
// Example: FormatDownloadName("Arshdeep Singh Gill", "150.50") -> "qr_Arshdeep_Singh_Gill_150.50.png"
func FormatDownloadName(payeeName, amount string) string {
	var sb strings.Builder
	sb.WriteString(constants.DownloadNamePrefix)
	sb.WriteString("_")
	sb.WriteString(sanitizeFilePart(payeeName))
	sb.WriteString("_")
	sb.WriteString(sanitizeFilePart(amount))
	sb.WriteString(constants.ImageRouteExtension)
	return sb.String()
}

// TrimImageExtension strips the optional .png suffix from a retrieval ID
func TrimImageExtension(id string) string {
	return strings.TrimSuffix(id, constants.ImageRouteExtension)
}

// sanitizeFilePart replaces spaces with underscores and drops characters unsafe in file names
func sanitizeFilePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			return r
		default:
			return -1
		}
	}, s)
}
