package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tele "gopkg.in/telebot.v3"
)

// DefaultBaseURL is the production Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// ErrMissingParameters is returned before any network call when the bot
// token, chat id, or category is empty.
var ErrMissingParameters = errors.New("telegram: missing required parameters")

// Credentials identify the bot and the destination chat.
type Credentials struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

// RejectedError carries the Bot API's description for a non-success
// response.
type RejectedError struct {
	Description string
}

func (e *RejectedError) Error() string {
	return "telegram: rejected: " + e.Description
}

// chat adapts the raw chat id string from settings to telebot's
// Recipient.
type chat string

func (c chat) Recipient() string { return string(c) }

// Client sends messages through the Telegram Bot API. One outbound request
// per call, no retries: a missed reminder self-corrects at the next
// scheduled occurrence.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against baseURL, or the production endpoint
// when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send formats the message for category and delivers it to the configured
// chat.
func (c *Client) Send(ctx context.Context, creds Credentials, category string, data map[string]string) error {
	if creds.BotToken == "" || creds.ChatID == "" || category == "" {
		return ErrMissingParameters
	}
	return c.sendText(ctx, creds, Format(category, data))
}

// SendTest delivers the fixed connectivity-check message.
func (c *Client) SendTest(ctx context.Context, creds Credentials) error {
	if creds.BotToken == "" || creds.ChatID == "" {
		return ErrMissingParameters
	}
	return c.sendText(ctx, creds, TestMessage)
}

// sendText delivers one message via telebot. The bot handle is built per
// call because every request may carry different credentials; Offline
// skips telebot's getMe call so construction stays network-free.
func (c *Client) sendText(ctx context.Context, creds Credentials, text string) error {
	bot, err := tele.NewBot(tele.Settings{
		Token:   creds.BotToken,
		URL:     c.baseURL,
		Client:  c.httpClient,
		Offline: true,
	})
	if err != nil {
		return fmt.Errorf("telegram: init bot: %w", err)
	}

	_, err = bot.Send(chat(creds.ChatID), text, tele.ModeHTML)
	if err == nil {
		return nil
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		desc := apiErr.Description
		if desc == "" {
			desc = "failed to send message"
		}
		return &RejectedError{Description: desc}
	}
	return fmt.Errorf("telegram: send request: %w", err)
}
