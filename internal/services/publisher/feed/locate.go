package feed

import (
	"nexuproxy/internal/adapters/geoip"
	"nexuproxy/internal/services/publisher/domain"
)

// locator implements domain.Locator on top of the GeoLite2 reader
type locator struct {
	r *geoip.Reader
}

// NewLocator wraps a geoip reader as a domain.Locator
func NewLocator(r *geoip.Reader) domain.Locator {
	return locator{r: r}
}

func (l locator) Country(addr string) domain.Country {
	res := l.r.Country(addr)
	return domain.Country{Name: res.Name, Emoji: res.Emoji, Code: res.Code}
}
