package viz

import (
	"strings"
	"testing"
)

func TestHeatmapShape(t *testing.T) {
	field := []float64{0, 1, 2, 3, 4, 5}
	out, err := Heatmap(field, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// two field rows plus the min/max footer
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d", len(lines))
	}
}

func TestHeatmapBadShape(t *testing.T) {
	if _, err := Heatmap([]float64{1, 2, 3}, 2, 0); err == nil {
		t.Error("ragged shape should fail")
	}
	if _, err := Heatmap([]float64{1, 2}, 0, 0); err == nil {
		t.Error("zero nx should fail")
	}
}

func TestHeatmapUniformField(t *testing.T) {
	field := []float64{5, 5, 5, 5}
	if _, err := Heatmap(field, 2, 0); err != nil {
		t.Errorf("uniform field must not divide by zero: %v", err)
	}
}

func TestHeatmapSubsamplesWideGrids(t *testing.T) {
	const nx, ny = 200, 2
	field := make([]float64, nx*ny)
	out, err := Heatmap(field, nx, 50)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.Split(out, "\n")[0]
	if n := len([]rune(stripANSI(first))); n > 50 {
		t.Errorf("expected at most 50 columns after subsampling, got %d", n)
	}
}

func TestMaskMap(t *testing.T) {
	mask := []float64{1, 0, 0, 1}
	out, err := MaskMap(mask, 2)
	if err != nil {
		t.Fatal(err)
	}
	if out != "#.\n.#\n" {
		t.Errorf("unexpected mask map:\n%s", out)
	}

	if _, err := MaskMap(mask, 3); err == nil {
		t.Error("ragged shape should fail")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
