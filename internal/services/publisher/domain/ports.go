package domain

import "context"

// RunnerPort is the public port exposed by the module (what main calls)
type RunnerPort interface {
	Run(ctx context.Context) (RunStats, error)
}

// Fetcher returns candidate raw links from all subscription sources.
// Per-source failures are isolated inside the implementation; only the
// subscription list itself being unavailable is an error
type Fetcher interface {
	FetchLinks(ctx context.Context) ([]string, error)
}

// Channel delivers one batch of processed links as a single channel post.
// Flood control surfaces as a RateLimit error, other failures as Delivery
type Channel interface {
	PostBatch(ctx context.Context, batch []ProcessedLink) error
}

// Archive is the append-only persisted set of canonical links already
// delivered in prior runs. Load returns an empty set when the file is absent;
// Append persists iff keys is non-empty and never rewrites existing entries
type Archive interface {
	Load() (map[string]struct{}, error)
	Append(keys []string) error
}

// Locator resolves display geolocation for a server address.
// Implementations degrade to an Unknown result rather than failing
type Locator interface {
	Country(addr string) Country
}
