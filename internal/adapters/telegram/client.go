// Package telegram provides a minimal Bot API client for channel posting
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "nexuproxy/internal/platform/errors"
	"nexuproxy/internal/platform/logger"
)

const (
	baseURLDefault   = "https://api.telegram.org"
	defaultTimeout   = 30 * time.Second
	defaultFloodWait = 60 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL  string
	BotToken string
	Timeout  time.Duration

	// Extra pause taken when the API signals flood control, on top of the
	// scheduler's normal pacing
	FloodWait time.Duration
}

// Entry is one proxy line in a channel post
type Entry struct {
	AddressPort  string // "1.2.3.4:443" display text
	Link         string // canonical link used for the hyperlink and button
	CountryName  string // "Unknown" when geolocation is unavailable
	CountryEmoji string // flag emoji, may be empty
}

// Client posts proxy batches to a Telegram channel via the Bot API
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.FloodWait <= 0 {
		o.FloodWait = defaultFloodWait
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("telegram"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

type button struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type replyMarkup struct {
	InlineKeyboard [][]button `json:"inline_keyboard"`
}

type sendMessageReq struct {
	ChatID      string       `json:"chat_id"`
	Text        string       `json:"text"`
	ParseMode   string       `json:"parse_mode"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

// PostBatch formats and posts one batch of proxies to chatID.
// Flood control (HTTP 429) triggers the extra FloodWait pause and surfaces as
// a RateLimit error; any other failure surfaces as a Delivery error.
// Nothing is retried here; the scheduler decides what happens next
func (c *Client) PostBatch(ctx context.Context, chatID, footer string, entries []Entry) error {
	if len(entries) == 0 {
		return perr.Deliveryf("empty batch")
	}

	payload := sendMessageReq{
		ChatID:      chatID,
		Text:        buildMessage(entries, footer),
		ParseMode:   "MarkdownV2",
		ReplyMarkup: buildKeyboard(entries, keyboardColumns),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDelivery, "payload marshal failed")
	}

	url := c.opts.BaseURL + "/bot" + c.opts.BotToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDelivery, "new request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDelivery, "sendMessage failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("entries", len(entries)).
		Dur("latency", lat).
		Msg("telegram http response")

	switch resp.StatusCode {
	case http.StatusOK:
		c.log.Info().Int("entries", len(entries)).Msg("posted batch")
		return nil
	case http.StatusTooManyRequests:
		// flood control: take the extra pause here, then let the caller move on
		c.log.Warn().Dur("sleep", c.opts.FloodWait).Msg("flood control exceeded; backing off")
		c.sleep(c.opts.FloodWait)
		return perr.RateLimitedf("telegram flood control (429)")
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return perr.Deliveryf("telegram unexpected status %d body %s", resp.StatusCode, string(tail))
	}
}
