// Package module provides the publisher module implementation
package module

import (
	"nexuproxy/internal/modkit"

	"nexuproxy/internal/adapters/geoip"
	"nexuproxy/internal/core/linkparse"
	"nexuproxy/internal/services/publisher/domain"
	"nexuproxy/internal/services/publisher/feed"
	"nexuproxy/internal/services/publisher/repo"
	"nexuproxy/internal/services/publisher/service"
)

// Ports defines the publisher module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the publisher module
type Module struct {
	deps  modkit.Deps
	geo   *geoip.Reader
	ports Ports
}

var _ modkit.Module = (*Module)(nil)

// New constructs the publisher module
// It wires up all the adapters and the service using config from deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	fetch := feed.NewFetcher(deps)
	channel := feed.NewChannel(deps)
	archive := repo.NewFileArchive(opts.ArchivePath)

	geo := geoip.Open(opts.GeoIPPath)
	locate := feed.NewLocator(geo)

	heur := linkparse.SecretHeuristic{
		Sentinel:  linkparse.DefaultSentinel,
		Threshold: opts.SecretThreshold,
	}

	svc := service.New(
		fetch, channel, archive, locate, heur,
		service.Config{
			BatchSize: opts.BatchSize,
			PostDelay: opts.PostDelay,
			RunBudget: opts.RunBudget,
		},
	)

	m := &Module{deps: deps, geo: geo}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "publisher" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Close releases module resources
func (m *Module) Close() error { return m.geo.Close() }
