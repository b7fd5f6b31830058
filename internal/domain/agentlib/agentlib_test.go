package agentlib_test

import (
	"regexp"
	"testing"

	"github.com/openbobs/gateway/internal/domain/agentlib"
)

var fallbackPattern = regexp.MustCompile(`^agent-\d+$`)

func TestSanitizeFileNameAlphanumericPassThrough(t *testing.T) {
	for _, in := range []string{"recon", "Recon01", "a.b_c-d", "AGENT42"} {
		if got := agentlib.SanitizeFileName(in); got != in {
			t.Errorf("SanitizeFileName(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitizeFileNameCollapsesRuns(t *testing.T) {
	cases := map[string]string{
		"Recon Bot":        "Recon-Bot",
		"a   b":            "a-b",
		"x///y":            "x-y",
		"../../etc/passwd": "..-..-etc-passwd",
		"--trimmed--":      "trimmed",
		"tab\there":        "tab-here",
	}
	for in, want := range cases {
		if got := agentlib.SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFileNameFallback(t *testing.T) {
	for _, in := range []string{"", "   ", "///", "日本語"} {
		got := agentlib.SanitizeFileName(in)
		if !fallbackPattern.MatchString(got) {
			t.Errorf("SanitizeFileName(%q) = %q, want agent-<digits> fallback", in, got)
		}
	}
}

func TestSanitizeFileNameCharsetAndIdempotence(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	for _, in := range []string{"Recon Bot", "weird*&name", "x", "a.b", "-lead", "trail-"} {
		once := agentlib.SanitizeFileName(in)
		if !safe.MatchString(once) {
			t.Errorf("SanitizeFileName(%q) = %q contains unsafe characters", in, once)
		}
		if twice := agentlib.SanitizeFileName(once); twice != once {
			t.Errorf("SanitizeFileName not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestDeriveNamePrecedence(t *testing.T) {
	cases := []struct {
		def  agentlib.Definition
		want string
	}{
		{agentlib.Definition{"name": "Recon Bot", "id": "r1", "title": "T"}, "Recon Bot"},
		{agentlib.Definition{"id": "r1", "title": "T"}, "r1"},
		{agentlib.Definition{"title": "T"}, "T"},
		{agentlib.Definition{"name": "  padded  "}, "padded"},
	}
	for _, tc := range cases {
		if got := agentlib.DeriveName(tc.def); got != tc.want {
			t.Errorf("DeriveName(%v) = %q, want %q", tc.def, got, tc.want)
		}
	}
}

func TestDeriveNameFallback(t *testing.T) {
	for _, def := range []agentlib.Definition{
		{},
		{"name": ""},
		{"name": 42},
		{"name": "  ", "id": "", "title": "\t"},
	} {
		if got := agentlib.DeriveName(def); !fallbackPattern.MatchString(got) {
			t.Errorf("DeriveName(%v) = %q, want agent-<digits> fallback", def, got)
		}
	}
}
