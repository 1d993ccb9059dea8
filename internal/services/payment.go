package services

import (
	"github.com/sirupsen/logrus"

	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/helpers"
	"upi-qr-pay/internal/models"
	"upi-qr-pay/internal/validation"
)

// PaymentResult is a stored payment code plus any non-fatal logo warning
type PaymentResult struct {
	Intent  models.PaymentIntent
	Image   models.GeneratedImage
	Warning string
}

// PaymentService turns raw form input into a stored payment QR image
type PaymentService struct {
	payee    config.PayeeConfig
	qr       *QRService
	logos    LogoProvider
	registry *ImageRegistry
	logger   *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	payee config.PayeeConfig,
	qr *QRService,
	logos LogoProvider,
	registry *ImageRegistry,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		payee:    payee,
		qr:       qr,
		logos:    logos,
		registry: registry,
		logger:   logger,
	}
}

// NewIntent validates the raw amount and note and builds an intent for the fixed payee
func (s *PaymentService) NewIntent(amount, note string) (models.PaymentIntent, error) {
	validAmount, err := validation.ValidateAmount(amount)
	if err != nil {
		return models.PaymentIntent{}, err
	}

	validNote, err := validation.ValidateNote(note)
	if err != nil {
		return models.PaymentIntent{}, err
	}

	return models.PaymentIntent{
		PayeeID:   s.payee.ID,
		PayeeName: s.payee.Name,
		Amount:    validAmount,
		Note:      validNote,
		Currency:  s.payee.Currency,
	}, nil
}

// Generate validates the input, composes the image and stores it in the registry.
// Validation errors are returned before any image work happens.
func (s *PaymentService) Generate(amount, note string) (*PaymentResult, error) {
	intent, err := s.NewIntent(amount, note)
	if err != nil {
		return nil, err
	}

	composition, err := s.qr.Compose(intent, s.logos)
	if err != nil {
		return nil, err
	}

	img, err := s.registry.Put(composition.PNG, helpers.FormatDownloadName(intent.PayeeName, intent.Amount))
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Generated payment code %s for amount %s", img.ID, intent.Amount)

	return &PaymentResult{
		Intent:  intent,
		Image:   img,
		Warning: composition.Warning,
	}, nil
}

// Lookup returns a previously generated image
func (s *PaymentService) Lookup(id string) (models.GeneratedImage, error) {
	return s.registry.Get(helpers.TrimImageExtension(id))
}

// ImageCount returns the number of images held in the registry
func (s *PaymentService) ImageCount() int {
	return s.registry.Count()
}
