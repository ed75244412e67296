// Package telegram delivers contractor notifications through the Telegram
// Bot API. Contractors link their Telegram chat to their directory entry
// out of band; this adapter only sends.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"autoservice/internal/pkg/errs"
)

const sendTimeout = 10 * time.Second

// Sink posts sendMessage calls to the Telegram Bot API.
type Sink struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewSink creates a Telegram notification sink for the given bot token.
func NewSink(token string) (*Sink, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	return &Sink{
		token:   token,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: sendTimeout},
	}, nil
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers text to the recipient's Telegram chat.
func (s *Sink) Send(ctx context.Context, recipientChatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: recipientChatID, Text: text})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&result); err != nil {
		return fmt.Errorf("telegram sendMessage: malformed response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram sendMessage failed: %s", result.Description)
	}

	return nil
}
