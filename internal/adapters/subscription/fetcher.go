// Package subscription fetches raw proxy advertisements from subscription sources
package subscription

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"nexuproxy/internal/core/linkparse"
	perr "nexuproxy/internal/platform/errors"
	"nexuproxy/internal/platform/logger"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "nexuproxy-publisher"
	maxBodyBytes   = 8 << 20 // subscription lists are small; cap pathological bodies
)

// Fetcher reads a subscription list file and pulls newline-delimited link
// dumps from each source URL. Failures on individual sources are isolated:
// logged, skipped, and never abort the run
type Fetcher struct {
	http *http.Client
	path string
	log  logger.Logger
}

// NewFetcher builds a Fetcher for the subscription list at path
func NewFetcher(path string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		http: &http.Client{Timeout: timeout},
		path: path,
		log:  *logger.Named("subscription"),
	}
}

// FetchLinks returns every candidate raw link across all sources, in source
// order. Only the subscription list itself being unreadable is an error
func (f *Fetcher) FetchLinks(ctx context.Context) ([]string, error) {
	sources, err := f.sources()
	if err != nil {
		return nil, err
	}
	f.log.Info().Int("sources", len(sources)).Msg("fetching proxies from subscription sources")

	var raw []string
	for _, src := range sources {
		links, err := f.fetchOne(ctx, src)
		if err != nil {
			f.log.Error().Err(err).Str("source", src).Msg("source fetch failed; skipping")
			continue
		}
		f.log.Info().Str("source", src).Int("links", len(links)).Msg("fetched source")
		raw = append(raw, links...)
	}
	f.log.Info().Int("total", len(raw)).Msg("total raw links fetched")
	return raw, nil
}

// sources reads the subscription file, one URL per line, blanks and comments skipped
func (f *Fetcher) sources() ([]string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "subscription file %s unreadable", f.path)
	}
	var out []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, src string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, perr.WithSource(perr.Wrap(err, perr.ErrorCodeFetch, "bad source URL"), src)
	}
	req.Header.Set("User-Agent", defaultUA)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, perr.WithSource(perr.Wrap(err, perr.ErrorCodeFetch, "source request failed"), src)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, perr.WithSource(perr.Fetchf("unexpected status %d", resp.StatusCode), src)
	}

	var links []string
	sc := bufio.NewScanner(io.LimitReader(resp.Body, maxBodyBytes))
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !candidate(line) {
			continue
		}
		links = append(links, line)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.WithSource(perr.Wrap(err, perr.ErrorCodeFetch, "source body read failed"), src)
	}
	return links, nil
}

// candidate keeps only lines carrying one of the two proxy schemes;
// comments and everything else are discarded
func candidate(line string) bool {
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	return strings.HasPrefix(line, linkparse.SchemeTG) || strings.HasPrefix(line, linkparse.SchemeTMe)
}
