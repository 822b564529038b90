package linkparse

import "strings"

// Canonical rebuilds the normalized link from parsed and repaired fields.
// Field order is fixed (server, port, secret, tag) because the string is the
// dedup key and must be stable across runs. Values are carried as-is; they
// were already URL-safe in the source query string
func Canonical(p ParsedLink) string {
	var b strings.Builder
	b.WriteString(SchemeTG)
	b.WriteString("server=")
	b.WriteString(p.Server)
	b.WriteString("&port=")
	b.WriteString(p.Port)
	if p.Secret != nil && *p.Secret != "" {
		b.WriteString("&secret=")
		b.WriteString(*p.Secret)
	}
	if p.Tag != nil && *p.Tag != "" {
		b.WriteString("&tag=")
		b.WriteString(*p.Tag)
	}
	return b.String()
}
