package telegrambot

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"upi-qr-pay/internal/commands"
	"upi-qr-pay/internal/config"
	"upi-qr-pay/internal/handlers"
	"upi-qr-pay/internal/permissions"
)

// Bot represents a Telegram bot
type Bot struct {
	bot      *telebot.Bot
	handler  *handlers.TelegramHandler
	permCtrl *permissions.PermissionController
	logger   *logrus.Logger
}

// NewBot creates a new Telegram bot
func NewBot(
	cfg config.TelegramConfig,
	handler *handlers.TelegramHandler,
	permCtrl *permissions.PermissionController,
	logger *logrus.Logger,
) (*Bot, error) {
	// Create bot settings
	settings := telebot.Settings{
		Token:  cfg.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			logger.Errorf("Telegram bot error: %v", err)
			if c != nil {
				c.Send("An error occurred. Please try again later.")
			}
		},
	}

	// Create bot instance
	b, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		handler:  handler,
		permCtrl: permCtrl,
		logger:   logger,
	}

	// Setup middleware
	bot.setupMiddleware()

	return bot, nil
}

// Start starts the bot and blocks until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting Telegram bot")

	// Setup context for graceful shutdown
	go func() {
		<-ctx.Done()
		b.logger.Info("Stopping Telegram bot")
		b.bot.Stop()
	}()

	// Start the bot
	b.bot.Start()
	return nil
}

// setupMiddleware sets up the bot middleware
func (b *Bot) setupMiddleware() {
	// Add middleware for all updates
	b.bot.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			// Log incoming message
			b.logger.Infof("Received message from %d: %s", c.Sender().ID, c.Text())

			// Pass to the next handler
			return next(c)
		}
	})

	// Handle all messages
	b.bot.Handle(telebot.OnText, b.handleUpdate)
	b.bot.Handle(commands.Start, b.handleUpdate)
	b.bot.Handle(commands.Pay, b.handleUpdate)
}

// handleUpdate handles an update from Telegram
func (b *Bot) handleUpdate(c telebot.Context) error {
	userID := c.Sender().ID

	if !b.permCtrl.CanGenerate(userID) {
		b.logger.Warnf("User %d has no access", userID)
		return c.Send("You don't have permission to use this bot.")
	}

	return b.handler.Handle(context.Background(), c)
}
