// Package linkparse turns raw MTProto proxy advertisements into a canonical
// form. Pipeline order
// 1 Scheme check tg://proxy? or https://t.me/proxy? (prefix equivalent)
// 2 Query decode server port secret tag (first value wins)
// 3 Secret repair heuristic (trailing sentinel run)
// 4 Canonical serialization used as the dedup key
package linkparse

import (
	"net/url"
	"strconv"
	"strings"

	perr "nexuproxy/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

const (
	// SchemeTG is the native proxy scheme
	SchemeTG = "tg://proxy?"
	// SchemeTMe is the web-share form, equivalent up to the prefix
	SchemeTMe = "https://t.me/proxy?"
)

// ParsedLink holds the structured fields of one advertisement.
// Server and Port are always set on a successful parse; Secret and Tag are
// optional and nil when the query string carried no such parameter
type ParsedLink struct {
	Server string `validate:"required"`
	Port   string `validate:"required,number"`
	Secret *string
	Tag    *string
}

var validate = validator.New()

// Parse extracts structured fields from a raw link string.
// Pure function over the string; returns a Parse error for any other scheme,
// a missing server/port, or a syntactically invalid port
func Parse(raw string) (ParsedLink, error) {
	var toParse string
	switch {
	case strings.HasPrefix(raw, SchemeTG):
		toParse = raw
	case strings.HasPrefix(raw, SchemeTMe):
		// rewrite to the native scheme so both forms decode identically
		toParse = SchemeTG + raw[len(SchemeTMe):]
	default:
		return ParsedLink{}, perr.WithLink(perr.Parsef("unsupported link scheme"), clip(raw))
	}

	u, err := url.Parse(toParse)
	if err != nil {
		return ParsedLink{}, perr.WithLink(perr.Wrap(err, perr.ErrorCodeParse, "link parse failed"), clip(raw))
	}
	q := u.Query()

	p := ParsedLink{
		Server: first(q, "server"),
		Port:   first(q, "port"),
		Secret: firstOpt(q, "secret"),
		Tag:    firstOpt(q, "tag"),
	}

	if _, ok := q["server"]; !ok {
		return ParsedLink{}, perr.WithLink(perr.Parsef("missing server parameter"), clip(raw))
	}
	if _, ok := q["port"]; !ok {
		return ParsedLink{}, perr.WithLink(perr.Parsef("missing port parameter"), clip(raw))
	}
	if err := validate.Struct(p); err != nil {
		return ParsedLink{}, perr.WithLink(perr.Wrap(err, perr.ErrorCodeParse, "link failed validation"), clip(raw))
	}
	if n, err := strconv.Atoi(p.Port); err != nil || n < 1 || n > 65535 {
		return ParsedLink{}, perr.WithLink(perr.Parsef("port %q out of range", p.Port), clip(raw))
	}

	return p, nil
}

// first returns the first query value for key, or "" when absent
func first(q url.Values, key string) string {
	if vs, ok := q[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// firstOpt returns a pointer to the first query value, nil when absent
func firstOpt(q url.Values, key string) *string {
	if vs, ok := q[key]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

// clip bounds link fragments carried inside error metadata
func clip(s string) string {
	const maxFragment = 128
	if len(s) > maxFragment {
		return s[:maxFragment]
	}
	return s
}
