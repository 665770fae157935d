package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/worklog-hq/timesheet-backend-go/internal/config"
)

// Service is the outbound message relay. Delivery is best-effort; callers
// must never let a relay failure abort their own commit.
type Service interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

type client struct {
	cfg  config.TelegramConfig
	http *http.Client
}

// NewClient creates a Telegram Bot API client.
func NewClient(cfg config.TelegramConfig) Service {
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage delivers a text message to a chat via the Bot API.
func (c *client) SendMessage(ctx context.Context, chatID string, text string) error {
	if c.cfg.BotToken == "" {
		return fmt.Errorf("telegram bot token not configured")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal telegram request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.cfg.APIBaseURL, c.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("telegram API error [%d]: %s", resp.StatusCode, result.Description)
	}

	return nil
}
