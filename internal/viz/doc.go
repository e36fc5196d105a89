// Package viz renders glacier fields in the terminal: color-ramped
// heatmaps of thickness, elevation and ice extent, and time-series
// charts of volume and area built on asciigraph.
package viz
