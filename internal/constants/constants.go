package constants

const (
	// Payment constants
	UPIScheme       = "upi"
	DefaultCurrency = "INR"
	RupeeSymbol     = "₹"
	RupeeFallback   = "Rs."
	MaxAmountScale  = 2
	MaxAmountDigits = 9
	MaxNoteLength   = 80

	// QR rendering constants
	DefaultBoxSize       = 10
	QuietZoneModules     = 4
	DefaultLogoSize      = 220
	MaxLogoFraction      = 0.30
	DefaultFontSize      = 20
	CaptionTopOffset     = 5
	CaptionLineSpacing   = 10
	CaptionBandPadding   = 20
	CaptionSideMargin    = 4
	CaptionEllipsis      = "…"
	CaptionEllipsisASCII = "..."
	DownloadNamePrefix   = "qr"
	ImageRouteExtension  = ".png"

	// Network constants
	DefaultTimeout          = 30
	DefaultRetryCount       = 3
	DefaultRetryWaitTime    = 1
	DefaultRetryMaxWaitTime = 5
	LogoRetryInterval       = 60 // seconds
	ReadTimeout             = 10
	WriteTimeout            = 30
	ShutdownTimeout         = 10

	// Cache constants
	ImageExpiration      = 30 // minutes
	ImageCleanupInterval = 10 // minutes
	DefaultMaxImages     = 1000

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
)
