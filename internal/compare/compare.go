// Package compare scores a simulated ice-extent mask against an observed
// one of identical shape, producing confusion counts, accuracy, and a
// colored per-node diff map for the terminal.
package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stats summarizes the agreement between two binary masks.
type Stats struct {
	BothIce  int // simulated 1, observed 1
	BothFree int // simulated 0, observed 0
	SimOnly  int // simulated 1, observed 0
	ObsOnly  int // simulated 0, observed 1
}

// Total returns the node count.
func (s Stats) Total() int { return s.BothIce + s.BothFree + s.SimOnly + s.ObsOnly }

// Accuracy is the fraction of nodes where the masks agree.
func (s Stats) Accuracy() float64 {
	n := s.Total()
	if n == 0 {
		return 0
	}
	return float64(s.BothIce+s.BothFree) / float64(n)
}

// Jaccard is the intersection-over-union of the two ice extents.
func (s Stats) Jaccard() float64 {
	union := s.BothIce + s.SimOnly + s.ObsOnly
	if union == 0 {
		return 1
	}
	return float64(s.BothIce) / float64(union)
}

// Accuracy scores simulated against observed. Values > 0 count as ice,
// matching the solver's I_map convention. The masks must have identical
// length.
func Accuracy(simulated, observed []float64) (Stats, error) {
	if len(simulated) != len(observed) {
		return Stats{}, fmt.Errorf("compare: mask shapes differ: %d vs %d nodes",
			len(simulated), len(observed))
	}
	var st Stats
	for i := range simulated {
		sim := simulated[i] > 0
		obs := observed[i] > 0
		switch {
		case sim && obs:
			st.BothIce++
		case !sim && !obs:
			st.BothFree++
		case sim:
			st.SimOnly++
		default:
			st.ObsOnly++
		}
	}
	return st, nil
}

var (
	styleBothIce = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	styleSimOnly = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	styleObsOnly = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
	styleFree    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// Render draws a per-node diff map, one rune per node, nx runes per line:
// '#' agreement on ice, '+' simulated-only, '-' observed-only, '.' both
// ice-free.
func Render(simulated, observed []float64, nx int) (string, error) {
	if len(simulated) != len(observed) {
		return "", fmt.Errorf("compare: mask shapes differ: %d vs %d nodes",
			len(simulated), len(observed))
	}
	if nx <= 0 || len(simulated)%nx != 0 {
		return "", fmt.Errorf("compare: %d nodes do not form rows of %d", len(simulated), nx)
	}
	var b strings.Builder
	for i := range simulated {
		sim := simulated[i] > 0
		obs := observed[i] > 0
		switch {
		case sim && obs:
			b.WriteString(styleBothIce.Render("#"))
		case sim:
			b.WriteString(styleSimOnly.Render("+"))
		case obs:
			b.WriteString(styleObsOnly.Render("-"))
		default:
			b.WriteString(styleFree.Render("."))
		}
		if (i+1)%nx == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
