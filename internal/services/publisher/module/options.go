package module

import (
	"time"

	"nexuproxy/internal/platform/config"
)

// Options holds configuration options for the publisher service
type Options struct {
	BatchSize       int
	PostDelay       time.Duration
	RunBudget       time.Duration
	SecretThreshold int

	ArchivePath string
	GeoIPPath   string
}

// FromConfig reads the publisher options from config with PUBLISHER_ prefix
func FromConfig(cfg config.Conf) Options {
	pub := cfg.Prefix("PUBLISHER_")
	return Options{
		BatchSize:       pub.MayInt("BATCH_SIZE", 9),
		PostDelay:       pub.MayDuration("POST_DELAY", 10*time.Minute),
		RunBudget:       pub.MayDuration("RUN_BUDGET", 55*time.Minute),
		SecretThreshold: pub.MayInt("SECRET_THRESHOLD", 60),
		ArchivePath:     pub.MayString("ARCHIVE", "data/archive.txt"),
		GeoIPPath:       pub.MayString("GEOIP_DB", "data/GeoLite2-Country.mmdb"),
	}
}
