package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "nexuproxy/internal/platform/testkit"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "info"},
		{"   nonsense   ", "info"},
	}
	for _, c := range cases {
		lvl := parseLevel(c.in)
		if strings.ToLower(lvl.String()) != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, lvl, c.want)
		}
	}
}

func TestInit_Get_Named_C_WithRun(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:     "info",
		Format:    "json",
		Service:   "nexuproxy",
		Component: "root",
		Writer:    &buf,
		StaticFields: map[string]string{
			"build": "test",
		},
	})

	Get().Info().Str("k", "v").Msg("root-msg")
	Named("publisher").Info().Msg("named-msg")

	ctx := WithRun(context.Background(), "run-123")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("ctx-plain")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, `"component":"publisher"`)
	kit.MustContain(t, out, `"run_id":"run-123"`)
	kit.MustContain(t, out, `"service":"nexuproxy"`)
	kit.MustContain(t, out, `"build":"test"`)

	// Init is once-only; a second call must not replace the root writer
	Init(Options{Level: "error", Writer: &bytes.Buffer{}})
	Get().Info().Msg("still-here")
	kit.MustContain(t, buf.String(), "still-here")
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	opt := FromEnv()
	if opt.Level != "info" || opt.Format != "console" {
		t.Fatalf("FromEnv defaults = %+v", opt)
	}
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_SERVICE", "svc")
	opt = FromEnv()
	if opt.Level != "warn" || opt.Service != "svc" {
		t.Fatalf("FromEnv env = %+v", opt)
	}
}
