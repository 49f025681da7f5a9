package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Reply is what a command handler sends back.
type Reply struct {
	Text  string // HTML
	Photo []byte // PNG, optional
}

// CommandHandler is called when a user command is received.
type CommandHandler func(ctx context.Context, command string) Reply

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
// Only commands from the configured chat are handled; others are logged and skipped.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	t.Logger.Info().Int("poll_timeout", t.PollTimeout).Msg("telegram polling started")

	for {
		if ctx.Err() != nil {
			t.Logger.Info().Msg("telegram polling stopped")
			return
		}

		updates, err := t.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				t.Logger.Info().Msg("telegram polling stopped")
				return
			}
			t.Logger.Warn().Err(err).Msg("polling request failed")
			select {
			case <-ctx.Done():
			case <-time.After(t.RetryDelay):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
				continue
			}
			text := strings.TrimSpace(update.Message.Text)
			chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
			if chatID != t.ChatID {
				t.Logger.Warn().Str("chat_id", chatID).Msg("ignoring command from unauthorized chat")
				continue
			}
			t.Logger.Info().Str("chat_id", chatID).Str("command", text).Msg("received command")

			reply := handler(ctx, text)
			t.reply(ctx, chatID, reply)
		}
	}
}

func (t *TelegramNotifier) reply(ctx context.Context, chatID string, r Reply) {
	if len(r.Photo) > 0 {
		if err := t.SendPhoto(ctx, chatID, r.Photo, ""); err != nil {
			t.Logger.Error().Err(err).Str("chat_id", chatID).Msg("send chart")
		}
	}
	if r.Text != "" {
		if err := t.SendTo(ctx, chatID, r.Text); err != nil {
			t.Logger.Error().Err(err).Str("chat_id", chatID).Msg("send reply")
		}
	}
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=%d", t.endpoint("getUpdates"), offset, t.PollTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getUpdates status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("getUpdates not ok: %s", string(body))
	}
	return result.Result, nil
}
