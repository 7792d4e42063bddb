package viz

import (
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#00df81", color.RGBA{0x00, 0xdf, 0x81, 0xff}},
		{"#FFFFFF", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"00df81", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#zzzzzz", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		if got := parseHex(tt.in); got != tt.want {
			t.Errorf("parseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := hexColor(parseHex("#0a0b0c")); got != "#0a0b0c" {
		t.Errorf("round trip gave %s", got)
	}
}

func TestBlend(t *testing.T) {
	fg := color.RGBA{200, 100, 0, 0xff}
	bg := color.RGBA{0, 0, 0, 0xff}
	if got := blend(fg, bg, 1); got != fg {
		t.Errorf("alpha 1 should give fg, got %v", got)
	}
	if got := blend(fg, bg, 0); got != bg {
		t.Errorf("alpha 0 should give bg, got %v", got)
	}
	if got := blend(fg, bg, 0.5); got.R != 100 || got.G != 50 {
		t.Errorf("unexpected half blend %v", got)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != strings.Repeat("─", 5) {
		t.Errorf("empty series should be a flat rule, got %q", got)
	}
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := SparklineChart(values, 4)
	if n := utf8.RuneCountInString(got); n != 4 {
		t.Errorf("expected 4 bars, got %d", n)
	}
	if !strings.HasSuffix(got, "█") {
		t.Errorf("latest maximum should be a full bar, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "konnekt" {
		t.Error("unknown theme should fall back to konnekt")
	}
	if NextTheme("sunset").Name != ThemeNames()[0] {
		t.Error("theme cycle should wrap")
	}
	th := ThemeOcean.WithColors("#123456", "")
	if th.Primary != "#123456" || th.Secondary != ThemeOcean.Secondary {
		t.Errorf("unexpected colour override %+v", th)
	}
}
