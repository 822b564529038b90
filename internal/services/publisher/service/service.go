// Package service drives one publishing run end to end
package service

import (
	"context"
	"time"

	"nexuproxy/internal/core/linkparse"
	perr "nexuproxy/internal/platform/errors"
	"nexuproxy/internal/platform/logger"
	"nexuproxy/internal/services/publisher/domain"
)

// Config holds configuration options for the publisher service
type Config struct {
	BatchSize int           // links per channel post; <=0 -> 9
	PostDelay time.Duration // blocking pause between successful posts; <=0 -> 10m
	RunBudget time.Duration // total wall-clock budget for the run; <=0 -> 55m

	// Cost estimates used at budget checkpoints
	ParseCost time.Duration // headroom reserved before each parse step; <=0 -> 5s
	PostCost  time.Duration // estimated cost of one channel post; <=0 -> 5s
}

// phase labels the scheduler states for logs
type phase string

const (
	phaseFetching   phase = "fetching"
	phaseParsing    phase = "parsing"
	phaseFiltering  phase = "filtering"
	phaseDelivering phase = "delivering"
	phaseDone       phase = "done"
)

// Service implements the publisher run: fetch, parse, filter, deliver, archive.
// Strictly sequential; one batch is in flight at a time and the inter-batch
// delay is a blocking pause, so archive writes never interleave
type Service struct {
	Fetch   domain.Fetcher
	Channel domain.Channel
	Archive domain.Archive
	Locate  domain.Locator // optional; nil means every entry is Unknown
	Heur    linkparse.SecretHeuristic
	Cfg     Config

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New constructs the publisher service
func New(
	f domain.Fetcher,
	ch domain.Channel,
	ar domain.Archive,
	loc domain.Locator,
	heur linkparse.SecretHeuristic,
	cfg Config,
) *Service {
	if f == nil {
		panic("publisher.Service requires a non nil Fetcher")
	}
	if ch == nil {
		panic("publisher.Service requires a non nil Channel")
	}
	if ar == nil {
		panic("publisher.Service requires a non nil Archive")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 9
	}
	if cfg.PostDelay <= 0 {
		cfg.PostDelay = 10 * time.Minute
	}
	if cfg.RunBudget <= 0 {
		cfg.RunBudget = 55 * time.Minute
	}
	if cfg.ParseCost <= 0 {
		cfg.ParseCost = 5 * time.Second
	}
	if cfg.PostCost <= 0 {
		cfg.PostCost = 5 * time.Second
	}
	return &Service{
		Fetch: f, Channel: ch, Archive: ar, Locate: loc,
		Heur:  heur,
		Cfg:   cfg,
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Run implements domain.RunnerPort. Whatever was successfully delivered is
// persisted exactly once before returning, even on partial failure
func (s *Service) Run(ctx context.Context) (domain.RunStats, error) {
	start := s.now()
	log := logger.C(ctx)
	var st domain.RunStats

	s.logPhase(ctx, phaseFetching)
	raw, err := s.Fetch.FetchLinks(ctx)
	if err != nil {
		return st, err
	}
	st.Fetched = len(raw)
	if len(raw) == 0 {
		log.Info().Msg("no raw links fetched; nothing to do")
		s.logPhase(ctx, phaseDone)
		return st, nil
	}

	archived, err := s.Archive.Load()
	if err != nil {
		log.Warn().Err(err).Msg("archive load failed; starting with an empty archive")
	}
	log.Info().Int("entries", len(archived)).Msg("loaded archive")

	s.logPhase(ctx, phaseParsing)
	s.logPhase(ctx, phaseFiltering)
	queue := s.filter(ctx, raw, archived, start, &st)
	st.Enqueued = len(queue)
	log.Info().
		Int("fetched", st.Fetched).
		Int("skipped", st.Skipped).
		Int("duplicates", st.Duplicates).
		Int("enqueued", st.Enqueued).
		Msg("filtering finished")

	var archivable []string
	var runErr error
	if len(queue) > 0 {
		s.logPhase(ctx, phaseDelivering)
		archivable, runErr = s.deliver(ctx, queue, start, &st)
	}

	// DONE: a single append pass, in every exit path
	s.logPhase(ctx, phaseDone)
	if err := s.Archive.Append(archivable); err != nil {
		log.Error().Err(err).Int("keys", len(archivable)).Msg("archive append failed")
		if runErr == nil {
			runErr = err
		}
		return st, runErr
	}
	st.Archived = len(archivable)
	log.Info().
		Int("batches", st.Batches).
		Int("posted", st.Posted).
		Int("archived", st.Archived).
		Bool("budget_aborted", st.BudgetAborted).
		Msg("run finished")
	return st, runErr
}

// filter parses, repairs, and dedups raw links in fetch order.
// First seen wins for intra-run duplicates; links already archived are marked
// seen too so later copies in the same feed short-circuit on the cheap set
func (s *Service) filter(
	ctx context.Context,
	raw []string,
	archived map[string]struct{},
	start time.Time,
	st *domain.RunStats,
) []domain.ProcessedLink {
	log := logger.C(ctx)
	seen := map[string]struct{}{}
	queue := make([]domain.ProcessedLink, 0, len(raw))

	for _, r := range raw {
		if s.overBudget(start, s.Cfg.ParseCost) {
			st.BudgetAborted = true
			log.Warn().Dur("budget", s.Cfg.RunBudget).Msg("budget reached during parsing; skipping remaining links")
			break
		}

		pl, err := s.process(r)
		if err != nil {
			st.Skipped++
			log.Warn().Err(err).Str("kind", perr.CodeOf(err).String()).Msg("link skipped")
			continue
		}
		st.Parsed++

		if _, dup := seen[pl.Canonical]; dup {
			st.Duplicates++
			continue
		}
		seen[pl.Canonical] = struct{}{}
		if _, old := archived[pl.Canonical]; old {
			st.Duplicates++
			continue
		}
		queue = append(queue, pl)
	}
	return queue
}

// process turns one raw link into a processed link, or an error to skip it
func (s *Service) process(raw string) (domain.ProcessedLink, error) {
	p, err := linkparse.Parse(raw)
	if err != nil {
		return domain.ProcessedLink{}, err
	}
	sec, err := s.Heur.Repair(p.Secret)
	if err != nil {
		return domain.ProcessedLink{}, perr.WithLink(err, raw)
	}
	p.Secret = sec

	pl := domain.ProcessedLink{Parsed: p, Canonical: linkparse.Canonical(p)}
	if s.Locate != nil {
		pl.Country = s.Locate.Country(p.Server)
	} else {
		pl.Country = domain.Country{Name: "Unknown"}
	}
	return pl, nil
}

// deliver posts the queue in fixed-size batches, in order. A batch becomes
// archivable only after its post is confirmed; failed batches skip the delay
// and are not archived. The budget is checked before each batch
func (s *Service) deliver(
	ctx context.Context,
	queue []domain.ProcessedLink,
	start time.Time,
	st *domain.RunStats,
) ([]string, error) {
	log := logger.C(ctx)
	batches := batchify(queue, s.Cfg.BatchSize)
	var archivable []string

	for i, b := range batches {
		last := i == len(batches)-1
		cost := s.Cfg.PostCost
		if !last {
			cost += s.Cfg.PostDelay
		}
		if s.overBudget(start, cost) {
			st.BudgetAborted = true
			log.Warn().
				Int("remaining", len(batches)-i).
				Dur("budget", s.Cfg.RunBudget).
				Msg("budget reached during delivery; abandoning remaining batches")
			break
		}

		st.Batches++
		if err := s.Channel.PostBatch(ctx, b); err != nil {
			// failed batches are not archived and take no delay
			log.Error().Err(err).
				Str("kind", perr.CodeOf(err).String()).
				Int("batch", i+1).
				Int("links", len(b)).
				Msg("batch delivery failed; moving on")
			continue
		}
		st.Posted += len(b)
		for _, pl := range b {
			archivable = append(archivable, pl.Canonical)
		}

		if !last {
			log.Info().Dur("delay", s.Cfg.PostDelay).Msg("waiting before next batch")
			if err := s.sleep(ctx, s.Cfg.PostDelay); err != nil {
				// canceled mid-pause; keep what was delivered so far
				return archivable, err
			}
		}
	}
	return archivable, nil
}

// overBudget reports whether elapsed time plus the estimated cost of the next
// unit of work would exceed the run budget
func (s *Service) overBudget(start time.Time, cost time.Duration) bool {
	return s.now().Sub(start)+cost > s.Cfg.RunBudget
}

func (s *Service) logPhase(ctx context.Context, ph phase) {
	logger.C(ctx).Debug().Str("phase", string(ph)).Msg("run phase")
}

// batchify partitions queue into chunks of size at most n, preserving order
func batchify(queue []domain.ProcessedLink, n int) [][]domain.ProcessedLink {
	var out [][]domain.ProcessedLink
	for i := 0; i < len(queue); i += n {
		end := min(i+n, len(queue))
		out = append(out, queue[i:end])
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
