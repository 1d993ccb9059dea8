package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"upi-qr-pay/internal/commands"
	apperrors "upi-qr-pay/internal/errors"
	"upi-qr-pay/internal/services"
)

// TelegramHandler answers bot messages with payment QR codes
type TelegramHandler struct {
	payments *services.PaymentService
	logger   *logrus.Logger
}

// NewTelegramHandler creates a new Telegram handler
func NewTelegramHandler(payments *services.PaymentService, logger *logrus.Logger) *TelegramHandler {
	return &TelegramHandler{
		payments: payments,
		logger:   logger,
	}
}

// Handle handles a message from Telegram
func (h *TelegramHandler) Handle(ctx context.Context, c telebot.Context) error {
	text := strings.TrimSpace(c.Text())

	switch {
	case strings.HasPrefix(text, commands.Start) || text == commands.Help:
		return h.sendTextMessage(c, commands.HelpText, h.createMainKeyboard())
	case strings.HasPrefix(text, commands.Pay):
		return h.handlePay(c, strings.TrimPrefix(text, commands.Pay))
	default:
		return h.handlePay(c, text)
	}
}

func (h *TelegramHandler) handlePay(c telebot.Context, payload string) error {
	amount, note := ParsePayPayload(payload)

	result, err := h.payments.Generate(amount, note)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return h.sendTextMessage(c, validationErr.Message, h.createMainKeyboard())
		}
		h.logger.Errorf("Failed to generate QR code: %v", err)
		return h.sendTextMessage(c, "Error generating QR code. Please try again later.", nil)
	}

	if err := h.sendQRCode(c, result); err != nil {
		return err
	}

	if result.Warning != "" {
		return h.sendTextMessage(c, result.Warning, nil)
	}
	return nil
}

// ParsePayPayload splits "<amount> [note...]" into its parts.
// A bot mention suffix such as "/pay@my_bot" is dropped.
func ParsePayPayload(payload string) (string, string) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "@") {
		if i := strings.IndexAny(payload, " \t\n"); i >= 0 {
			payload = strings.TrimSpace(payload[i:])
		} else {
			payload = ""
		}
	}

	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// sendTextMessage sends a text message with optional markup
func (h *TelegramHandler) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeHTML,
	}

	if markup != nil {
		opts.ReplyMarkup = markup
	}

	_, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		h.logger.Errorf("Failed to send message: %v", err)
	}
	return err
}

// sendQRCode sends the generated image as a photo
func (h *TelegramHandler) sendQRCode(c telebot.Context, result *services.PaymentResult) error {
	photo := &telebot.Photo{
		File:    telebot.FromReader(bytes.NewReader(result.Image.PNG)),
		Caption: fmt.Sprintf("UPI payment of %s %s", result.Intent.Amount, result.Intent.Currency),
	}

	_, err := c.Bot().Send(c.Recipient(), photo)
	if err != nil {
		h.logger.Errorf("Failed to send QR code: %v", err)
	}
	return err
}

// createMainKeyboard creates the main keyboard
func (h *TelegramHandler) createMainKeyboard() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard: true,
	}

	markup.Reply(
		telebot.Row{
			telebot.Btn{Text: commands.Help},
		},
	)

	return markup
}
