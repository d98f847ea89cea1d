package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"mensabot-backend/lib/telemetry"
)

// Chat is the part of a Telegram chat object the bot cares about.
// Type is one of "private", "group", "supergroup" or "channel".
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type apiResponse[T any] struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
	Result      T      `json:"result"`
}

type Client struct {
	http *resty.Client
}

const pollTimeout = 30 * time.Second

func NewClient(token string) *Client {
	client := resty.New()
	client.SetBaseURL(fmt.Sprintf("https://api.telegram.org/bot%s", token))
	// must outlive the long poll timeout or getUpdates always errors
	client.SetTimeout(pollTimeout + time.Second*10)

	telemetry.InstrumentResty(client, "telegram/http")

	return &Client{http: client}
}

// SendMessage delivers markdown-formatted text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	var body apiResponse[Message]
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id":    chatID,
			"text":       text,
			"parse_mode": "Markdown",
		}).
		SetResult(&body).
		Post("/sendMessage")
	if err != nil {
		return err
	}
	if res.IsError() || !body.Ok {
		return fmt.Errorf("sendMessage failed: status %d: %s", res.StatusCode(), body.Description)
	}
	return nil
}

// GetUpdates long polls for incoming updates. `offset` should be one
// past the last update id already handled.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	var body apiResponse[[]Update]
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"offset":          offset,
			"timeout":         int(pollTimeout.Seconds()),
			"allowed_updates": []string{"message"},
		}).
		SetResult(&body).
		Post("/getUpdates")
	if err != nil {
		return nil, err
	}
	if res.IsError() || !body.Ok {
		return nil, fmt.Errorf("getUpdates failed: status %d: %s", res.StatusCode(), body.Description)
	}
	return body.Result, nil
}
