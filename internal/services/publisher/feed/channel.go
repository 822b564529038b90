package feed

import (
	"context"
	"time"

	"nexuproxy/internal/adapters/telegram"
	"nexuproxy/internal/modkit"
	"nexuproxy/internal/services/publisher/domain"
)

// channel implements domain.Channel on top of the Telegram Bot API client
type channel struct {
	c      *telegram.Client
	chatID string
	footer string
}

// NewChannel constructs a domain.Channel from config under PUBLISHER_TELEGRAM_*.
// BOT_TOKEN and CHANNEL_ID are required; their absence aborts bootstrap
func NewChannel(deps modkit.Deps) domain.Channel {
	tg := deps.Cfg.Prefix("PUBLISHER_TELEGRAM_")
	return &channel{
		c: telegram.NewClient(telegram.Options{
			BotToken:  tg.MustString("BOT_TOKEN"),
			FloodWait: tg.MayDuration("FLOOD_WAIT", 60*time.Second),
		}),
		chatID: tg.MustString("CHANNEL_ID"),
		footer: deps.Cfg.Prefix("PUBLISHER_").MayString("CHANNEL_HANDLE", "@NexuProxy"),
	}
}

func (ch *channel) PostBatch(ctx context.Context, batch []domain.ProcessedLink) error {
	entries := make([]telegram.Entry, 0, len(batch))
	for _, pl := range batch {
		entries = append(entries, telegram.Entry{
			AddressPort:  pl.AddressPort(),
			Link:         pl.Canonical,
			CountryName:  pl.Country.Name,
			CountryEmoji: pl.Country.Emoji,
		})
	}
	return ch.c.PostBatch(ctx, ch.chatID, ch.footer, entries)
}
