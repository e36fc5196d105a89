package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Chart plots arbitrary values with a caption.
func Chart(values []float64, caption string, width, height int) string {
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// VolumeChart plots total ice volume (km^3) against step index.
func VolumeChart(volumes []float64, width, height int) string {
	scaled := make([]float64, len(volumes))
	for i, v := range volumes {
		scaled[i] = v / 1e9
	}
	return asciigraph.Plot(scaled,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("ice volume, km^3"),
	)
}

// AreaChart plots ice-covered area (km^2) against step index.
func AreaChart(areas []float64, width, height int) string {
	scaled := make([]float64, len(areas))
	for i, v := range areas {
		scaled[i] = v / 1e6
	}
	return asciigraph.Plot(scaled,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("ice area, km^2"),
	)
}
