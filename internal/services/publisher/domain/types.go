// Package domain holds the core data structures and ports for the publisher
package domain

import "nexuproxy/internal/core/linkparse"

// Country is display geolocation attached to a proxy entry.
// Never part of the canonical identity
type Country struct {
	Name  string
	Emoji string
	Code  string
}

// ProcessedLink is a parsed advertisement with a repaired secret and its
// canonical form. Canonical is the dedup key and the delivery payload identity
type ProcessedLink struct {
	Parsed    linkparse.ParsedLink
	Canonical string
	Country   Country
}

// AddressPort returns the display text for the entry
func (p ProcessedLink) AddressPort() string {
	return p.Parsed.Server + ":" + p.Parsed.Port
}

// RunStats summarizes one publishing run
type RunStats struct {
	Fetched    int // raw links pulled from all sources
	Parsed     int // links surviving parse + heuristic
	Skipped    int // parse failures and heuristic rejections
	Duplicates int // dropped by in-run or archive dedup
	Enqueued   int // unique new links queued for delivery
	Batches    int // batches attempted
	Posted     int // links in successfully delivered batches
	Archived   int // canonical links persisted this run

	BudgetAborted bool // the wall-clock budget cut the run short
}
