// Package feed holds adapter shims for the publisher's collaborator ports.
package feed

import (
	"time"

	"nexuproxy/internal/adapters/subscription"
	"nexuproxy/internal/modkit"
	"nexuproxy/internal/services/publisher/domain"
)

// NewFetcher constructs a domain.Fetcher from config under PUBLISHER_*.
// This keeps config-reading outside the service
func NewFetcher(deps modkit.Deps) domain.Fetcher {
	pub := deps.Cfg.Prefix("PUBLISHER_")
	return subscription.NewFetcher(
		pub.MayString("SUBSCRIPTIONS", "data/subscriptions.txt"),
		pub.MayDuration("FETCH_TIMEOUT", 15*time.Second),
	)
}
