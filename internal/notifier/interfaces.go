package notifier

import (
	"context"

	"github.com/tsymba/refurbwatch/internal/models"
	"gopkg.in/telebot.v4"
)

type API interface {
	// Handle lets you set the handler for some command name or one of the supported endpoints. It also applies middleware if such passed to the function.
	Handle(endpoint interface{}, h telebot.HandlerFunc, m ...telebot.MiddlewareFunc)
	// Start brings bot into motion by consuming incoming updates (see Bot.Updates channel).
	Start()
	// Stop gracefully shuts the poller down.
	Stop()

	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Notifier is the watcher's outbound contract: invoked at most once per newly
// seen listing, asynchronously; failures are not observed by the caller.
type Notifier interface {
	Notify(ctx context.Context, listing models.Listing) error
}
