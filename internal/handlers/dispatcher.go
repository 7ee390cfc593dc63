package handlers

import (
	"context"

	"lifedash/internal/storage"
	"lifedash/internal/telegram"
)

// ReminderDispatcher adapts the telegram client to the scheduler, pulling
// credentials from the stored settings at fire time.
type ReminderDispatcher struct {
	Client *telegram.Client
	Store  storage.Storage
}

func (d *ReminderDispatcher) SendReminder(ctx context.Context, category string) error {
	st, err := d.Store.GetSettings()
	if err != nil {
		return err
	}
	creds := telegram.Credentials{
		BotToken: st.Preferences.Telegram.BotToken,
		ChatID:   st.Preferences.Telegram.ChatID,
	}
	return d.Client.Send(ctx, creds, category, nil)
}
