package ui

import (
	"bytes"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"":         ColorAuto,
		" ALWAYS ": ColorAlways,
		"never":    ColorNever,
		"rainbow":  ColorAuto,
	}
	for value, want := range cases {
		if got := NormalizeColorMode(value); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", value, got, want)
		}
	}
}

func TestMessagesWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Infof("created %s\n", "config.json")
	u.Successf("done")
	u.Warnf("careful")
	u.Errorf("failed: %d", 2)

	if out.String() != "created config.json\ndone\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if errOut.String() != "careful\nfailed: 2\n" {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestDisableColorWins(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("disableColor must turn colors off")
	}
}
