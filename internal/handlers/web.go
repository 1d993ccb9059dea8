package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "upi-qr-pay/internal/errors"
	"upi-qr-pay/internal/services"
)

//go:embed templates/index.html
var templateFS embed.FS

const indexTemplate = "index.html"

// pageData is rendered into the form page
type pageData struct {
	PayeeName string
	Amount    string
	Note      string
	Error     string
	Warning   string
	QRURL     string
	Filename  string
}

// WebHandler serves the payment form and generated images
type WebHandler struct {
	payments  *services.PaymentService
	payeeName string
	logger    *logrus.Logger
}

// NewWebHandler creates a new web handler
func NewWebHandler(payments *services.PaymentService, payeeName string, logger *logrus.Logger) *WebHandler {
	return &WebHandler{
		payments:  payments,
		payeeName: payeeName,
		logger:    logger,
	}
}

// Register installs the page template and routes on the engine
func (h *WebHandler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/"+indexTemplate)))

	r.GET("/", h.Index)
	r.POST("/", h.Generate)
	r.GET("/qr/:id", h.ServeImage)
	r.GET("/healthz", h.Health)
}

// Index renders the empty form
func (h *WebHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, pageData{PayeeName: h.payeeName})
}

// Generate handles the form submission
func (h *WebHandler) Generate(c *gin.Context) {
	data := pageData{
		PayeeName: h.payeeName,
		Amount:    c.PostForm("amount"),
		Note:      c.PostForm("note"),
	}

	result, err := h.payments.Generate(data.Amount, data.Note)
	if err != nil {
		status, message := h.describeError(err)
		data.Error = message
		c.HTML(status, indexTemplate, data)
		return
	}

	data.Warning = result.Warning
	data.QRURL = result.Image.URL()
	data.Filename = result.Image.Filename
	c.HTML(http.StatusOK, indexTemplate, data)
}

// ServeImage returns a stored PNG by its ID
func (h *WebHandler) ServeImage(c *gin.Context) {
	img, err := h.payments.Lookup(c.Param("id"))
	if err != nil {
		h.logger.Debugf("Image lookup failed: %v", err)
		c.String(http.StatusNotFound, "Image not found")
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", img.PNG)
}

// Health reports liveness and the number of held images
func (h *WebHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"images": h.payments.ImageCount(),
	})
}

// describeError maps a generation error to a status code and user-facing message
func (h *WebHandler) describeError(err error) (int, string) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	if errors.Is(err, apperrors.ErrRegistryFull) {
		h.logger.Warn("Rejecting generation: image registry is full")
		return http.StatusServiceUnavailable, "Too many QR codes are being held right now. Please try again later."
	}

	h.logger.Errorf("Failed to generate QR code: %v", err)
	return http.StatusInternalServerError, "Error generating QR code: " + err.Error()
}
