package notifier

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tsymba/refurbwatch/internal/models"
	"github.com/tsymba/refurbwatch/test/mocks"
	"gopkg.in/telebot.v4"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	testBot := Bot{bot: mockBot, log: discardLogger()}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	testBot := Bot{bot: mockBot, log: discardLogger()}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	mockBot.On("Handle", "/start", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/stop", mock.AnythingOfType("telebot.HandlerFunc")).Once()
	mockBot.On("Handle", "/status", mock.AnythingOfType("telebot.HandlerFunc")).Once()

	testBot := Bot{bot: mockBot, log: discardLogger()}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func TestNotify(t *testing.T) {
	listing := models.Listing{
		Title: "MacBook Air",
		Link:  "https://www.apple.com/shop/product/1",
		Price: "$849.00",
		Specs: "Apple M1 chip, 16GB RAM",
	}

	t.Run("sends one message per subscribed chat", func(t *testing.T) {
		ctx := t.Context()

		mockRepo := mocks.NewSubscriptionRepository(t)
		mockRepo.On("GetSubscribedChats", ctx).Return([]int64{1, 2}, nil).Once()

		mockBot := mocks.NewAPI(t)
		mockBot.On("Send", telebot.ChatID(1), mock.AnythingOfType("string"), telebot.ModeHTML).
			Return(&telebot.Message{}, nil).Once()
		mockBot.On("Send", telebot.ChatID(2), mock.AnythingOfType("string"), telebot.ModeHTML).
			Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: discardLogger(), repo: mockRepo}

		require.NoError(t, testBot.Notify(ctx, listing))
	})

	t.Run("a failed send does not stop delivery to other chats", func(t *testing.T) {
		ctx := t.Context()

		mockRepo := mocks.NewSubscriptionRepository(t)
		mockRepo.On("GetSubscribedChats", ctx).Return([]int64{1, 2}, nil).Once()

		mockBot := mocks.NewAPI(t)
		mockBot.On("Send", telebot.ChatID(1), mock.AnythingOfType("string"), telebot.ModeHTML).
			Return(nil, assert.AnError).Once()
		mockBot.On("Send", telebot.ChatID(2), mock.AnythingOfType("string"), telebot.ModeHTML).
			Return(&telebot.Message{}, nil).Once()

		testBot := Bot{bot: mockBot, log: discardLogger(), repo: mockRepo}

		require.NoError(t, testBot.Notify(ctx, listing))
	})

	t.Run("repository failure is surfaced", func(t *testing.T) {
		ctx := t.Context()

		mockRepo := mocks.NewSubscriptionRepository(t)
		mockRepo.On("GetSubscribedChats", ctx).Return(nil, assert.AnError).Once()

		mockBot := mocks.NewAPI(t)

		testBot := Bot{bot: mockBot, log: discardLogger(), repo: mockRepo}

		err := testBot.Notify(ctx, listing)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockBot.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFormatListing(t *testing.T) {
	t.Parallel()

	t.Run("plain listing", func(t *testing.T) {
		listing := models.Listing{
			Title: "MacBook Air",
			Link:  "https://www.apple.com/shop/product/1",
			Price: "$849.00",
			Specs: "Apple M1 chip, 16GB RAM",
		}

		message := formatListing(listing)

		assert.Contains(t, message, "<b>MacBook Air</b>")
		assert.Contains(t, message, "$849.00")
		assert.Contains(t, message, "Apple M1 chip, 16GB RAM")
		assert.Contains(t, message, `href="https://www.apple.com/shop/product/1"`)
	})

	t.Run("markup characters in scraped text are escaped", func(t *testing.T) {
		listing := models.Listing{
			Title: `MacBook Pro 14" <2021>`,
			Link:  "https://www.apple.com/shop/product/2",
			Price: "$1,499.00",
			Specs: "16GB RAM & 512GB SSD",
		}

		message := formatListing(listing)

		assert.Contains(t, message, "<b>MacBook Pro 14&#34; &lt;2021&gt;</b>")
		assert.Contains(t, message, "16GB RAM &amp; 512GB SSD")
		assert.NotContains(t, message, "<2021>")
		assert.NotContains(t, message, "& 512GB")
	})
}
