package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/tsymba/refurbwatch/internal/models"
	"github.com/tsymba/refurbwatch/internal/repository"
	"gopkg.in/telebot.v4"
)

// Bot delivers new-listing notifications to subscribed Telegram chats.
type Bot struct {
	bot   API
	log   *slog.Logger
	repo  repository.SubscriptionRepository
	stats func() int
}

// NewBot authorizes the Telegram bot and registers its command routes.
// The stats callback feeds the /status command; it may be nil.
func NewBot(
	log *slog.Logger,
	repo repository.SubscriptionRepository,
	token string,
	poller time.Duration,
	stats func() int,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, repo: repo, stats: stats}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// Notify sends one message per subscribed chat for a newly seen listing.
// Per-chat send failures are logged and never retried.
func (b *Bot) Notify(ctx context.Context, listing models.Listing) error {
	const opn = "notifier.Notify"

	chats, err := b.repo.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	message := formatListing(listing)
	for _, chatID := range chats {
		if _, err = b.bot.Send(telebot.ChatID(chatID), message, telebot.ModeHTML); err != nil {
			b.log.Error("Failed to send listing notification",
				"op", opn, "chat_id", chatID, "error", err)
		}
	}

	return nil
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/stop", b.stopHandler)
	b.bot.Handle("/status", b.statusHandler)
}

// formatListing renders one listing as an HTML Telegram message. Scraped text
// is escaped so markup characters in a listing cannot break the message.
func formatListing(listing models.Listing) string {
	return fmt.Sprintf(
		"<b>%s</b>\n%s\n%s\n<a href=%q>Open listing</a>",
		html.EscapeString(listing.Title),
		html.EscapeString(listing.Price),
		html.EscapeString(listing.Specs),
		listing.Link,
	)
}
