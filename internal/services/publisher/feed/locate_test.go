package feed

import (
	"path/filepath"
	"testing"

	"nexuproxy/internal/adapters/geoip"
)

func TestLocator_DisabledReaderIsUnknown(t *testing.T) {
	loc := NewLocator(geoip.Open(filepath.Join(t.TempDir(), "nope.mmdb")))
	got := loc.Country("1.2.3.4")
	if got.Name != "Unknown" || got.Emoji != "" || got.Code != "" {
		t.Fatalf("Country = %+v, want Unknown", got)
	}
}
