package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	err := errors.New("connection refused")

	got := Format(OpCatalogLoad, err)
	want := "Failed to load the book catalog: connection refused"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got := Format(OpCatalogLoad, nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("decode failed")

	got := FormatWith(OpPlaybackStart, "Chapter 3", err)
	want := "Failed to start playback 'Chapter 3': decode failed"
	if got != want {
		t.Errorf("FormatWith() = %q, want %q", got, want)
	}

	// Empty context falls back to the plain format
	got = FormatWith(OpPlaybackStart, "", err)
	want = "Failed to start playback: decode failed"
	if got != want {
		t.Errorf("FormatWith(no context) = %q, want %q", got, want)
	}

	if got := FormatWith(OpPlaybackStart, "Chapter 3", nil); got != "" {
		t.Errorf("FormatWith(nil) = %q, want empty", got)
	}
}
