package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{"diagnostics", zerolog.TraceLevel, true},
		{"debug", zerolog.DebugLevel, true},
		{" INFO ", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"bogus", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := parseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLevel(%q) = %v, %v; want %v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseBool(t *testing.T) {
	if v, ok := parseBool("true"); !ok || !v {
		t.Fatalf("true: %v %v", v, ok)
	}
	if v, ok := parseBool("0"); !ok || v {
		t.Fatalf("0: %v %v", v, ok)
	}
	if _, ok := parseBool(""); ok {
		t.Fatal("empty must not parse")
	}
	if _, ok := parseBool("maybe"); ok {
		t.Fatal("junk must not parse")
	}
}

func TestDefaultConfig(t *testing.T) {
	if cfg := defaultConfig(ProfileTest); cfg.level != zerolog.DebugLevel || cfg.timestamp {
		t.Fatalf("test profile: %+v", cfg)
	}
	if cfg := defaultConfig(ProfileRuntime); cfg.level != zerolog.InfoLevel || !cfg.timestamp {
		t.Fatalf("runtime profile: %+v", cfg)
	}
}
