// Package telegram pushes preformatted report strings to a chat via
// the bot sendMessage endpoint.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mcdpromo-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("notify/telegram")

type Client struct {
	http     *resty.Client
	botToken string
	chatId   string
}

func NewClient(botToken, chatId string) *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 10)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		http:     client,
		botToken: botToken,
		chatId:   chatId,
	}
}

// Configured reports whether both the bot token and chat id were
// provided. Callers skip the push (rather than erroring) when not.
func (c *Client) Configured() bool {
	return c.botToken != "" && c.chatId != ""
}

func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.http, tracer, out)
}

// SendMessage pushes a Markdown-formatted message to the configured
// chat with link previews disabled.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	ctx, span := tracer.Start(ctx, "SendMessage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"chat_id":                  c.chatId,
			"text":                     text,
			"parse_mode":               "Markdown",
			"disable_web_page_preview": true,
		}).
		Post(fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.botToken))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return err
	}

	var result struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description"`
	}
	err = json.Unmarshal(res.Body(), &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed response")
		return fmt.Errorf("decode sendMessage response: %w", err)
	}
	if !result.Ok {
		err := fmt.Errorf("sendMessage rejected: %s", result.Description)
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected")
		return err
	}

	return nil
}
