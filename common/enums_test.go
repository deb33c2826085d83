package common

import (
	"errors"
	"testing"
)

func TestOutputFmtExt(t *testing.T) {
	cases := map[string]string{
		"html":     ".html",
		"markdown": ".md",
		"text":     ".txt",
	}
	for name, ext := range cases {
		f, err := ParseOutputFmt(name)
		if err != nil {
			t.Fatalf("ParseOutputFmt(%q): %v", name, err)
		}
		if got := f.Ext(); got != ext {
			t.Errorf("%s.Ext() = %q, want %q", name, got, ext)
		}
	}
}

func TestParseOutputFmtInvalid(t *testing.T) {
	if _, err := ParseOutputFmt("epub"); !errors.Is(err, ErrInvalidOutputFmt) {
		t.Fatalf("expected ErrInvalidOutputFmt, got %v", err)
	}
}

func TestImageModeText(t *testing.T) {
	var m ImageMode
	if err := m.UnmarshalText([]byte("extract")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if m != ImageModeExtract {
		t.Fatalf("got %v, want extract", m)
	}
	out, _ := m.MarshalText()
	if string(out) != "extract" {
		t.Fatalf("MarshalText = %q", out)
	}
}
