package web

import "strconv"

// formatPercent renders a 0-1 confidence as a whole percentage
func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
}
