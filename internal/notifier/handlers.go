package notifier

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v4"
)

// startHandler processes command /start: subscribes the chat to notifications.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	chatID := ctx.Chat().ID

	subscribed, err := b.repo.IsSubscribed(context.Background(), chatID)
	if err != nil {
		return fmt.Errorf("failed to check subscription: %w", err)
	}
	if subscribed {
		if err = ctx.Send("You are already subscribed to new listings."); err != nil {
			return fmt.Errorf("failed to send already-subscribed message: %w", err)
		}
		return nil
	}

	if err = b.repo.SubscribeChat(context.Background(), chatID); err != nil {
		return fmt.Errorf("failed to subscribe chat: %w", err)
	}

	if err = ctx.Send("Subscribed! You will be notified about new matching listings."); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// stopHandler processes command /stop: unsubscribes the chat.
func (b *Bot) stopHandler(ctx telebot.Context) error {
	b.log.Info("User stopped the bot", "username", ctx.Sender().Username)

	if err := b.repo.UnsubscribeChat(context.Background(), ctx.Chat().ID); err != nil {
		return fmt.Errorf("failed to unsubscribe chat: %w", err)
	}

	if err := ctx.Send("Unsubscribed. No more notifications."); err != nil {
		return fmt.Errorf("failed to send farewell message: %w", err)
	}

	return nil
}

// statusHandler processes command /status: reports the seen-set size.
func (b *Bot) statusHandler(ctx telebot.Context) error {
	seen := 0
	if b.stats != nil {
		seen = b.stats()
	}

	if err := ctx.Send(fmt.Sprintf("Distinct listings seen since start: %d", seen)); err != nil {
		return fmt.Errorf("failed to send status message: %w", err)
	}

	return nil
}
