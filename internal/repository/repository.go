package repository

import "context"

// SubscriptionRepository manages the chats that receive listing notifications.
type SubscriptionRepository interface {
	// SubscribeChat adds the chat to the recipient list. Idempotent.
	SubscribeChat(ctx context.Context, chatID int64) error
	// UnsubscribeChat removes the chat from the recipient list. Idempotent.
	UnsubscribeChat(ctx context.Context, chatID int64) error
	// IsSubscribed reports whether the chat is on the recipient list.
	IsSubscribed(ctx context.Context, chatID int64) (bool, error)
	// GetSubscribedChats returns all recipient chat IDs.
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}
