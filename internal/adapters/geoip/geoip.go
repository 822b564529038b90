// Package geoip resolves display geolocation from a local GeoLite2-Country database
package geoip

import (
	"net"

	"nexuproxy/internal/platform/logger"

	"github.com/oschwald/geoip2-golang"
)

// Reader wraps an optional GeoLite2-Country database.
// A missing or unreadable database disables lookups instead of failing the
// run; every lookup then returns the Unknown result
type Reader struct {
	db  *geoip2.Reader
	log logger.Logger
}

// Result is the display metadata attached to a proxy entry.
// It is never part of the canonical identity
type Result struct {
	Name  string // country name, "Unknown" when unresolved
	Emoji string // flag emoji, empty when unresolved
	Code  string // ISO 3166-1 alpha-2, empty when unresolved
}

// unknown is the lookup result when geolocation is unavailable
var unknown = Result{Name: "Unknown"}

// Open loads the database at path. Failure is non-fatal: the returned Reader
// is usable and simply reports Unknown for every address
func Open(path string) *Reader {
	log := logger.Named("geoip")
	db, err := geoip2.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("geolocation database unavailable; lookups disabled")
		return &Reader{log: *log}
	}
	log.Info().Str("path", path).Msg("geolocation database loaded")
	return &Reader{db: db, log: *log}
}

// Enabled reports whether a database is loaded
func (r *Reader) Enabled() bool { return r.db != nil }

// Country looks up display geolocation for a server address.
// Hostnames and unresolvable addresses yield the Unknown result
func (r *Reader) Country(addr string) Result {
	if r.db == nil {
		return unknown
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return unknown
	}
	rec, err := r.db.Country(ip)
	if err != nil || rec == nil || rec.Country.IsoCode == "" {
		return unknown
	}
	name := rec.Country.Names["en"]
	if name == "" {
		name = "Unknown"
	}
	return Result{
		Name:  name,
		Emoji: FlagEmoji(rec.Country.IsoCode),
		Code:  rec.Country.IsoCode,
	}
}

// Close releases the underlying database, if any
func (r *Reader) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// FlagEmoji converts an ISO 3166-1 alpha-2 country code to its flag emoji.
// Flags are two regional indicator symbols, 'A' being U+1F1E6
func FlagEmoji(code string) string {
	if len(code) != 2 {
		return ""
	}
	out := make([]rune, 0, 2)
	for _, c := range code {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return ""
		}
		out = append(out, 0x1F1E6+c-'A')
	}
	return string(out)
}
