package tui

import (
	"math"
	"strings"

	"coinpulse/internal/domain"
)

const (
	pointRune  = '•'
	latestRune = '●'
	stemRune   = '│'
)

// renderChart draws the series as an ASCII line chart of at most width plot
// columns and height rows. Only the most recent width samples are drawn. Nil
// samples leave a gap.
func renderChart(series domain.Series, width, height int) string {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}

	values := series.Values
	labels := series.Labels
	if len(values) > width {
		values = values[len(values)-width:]
		labels = labels[len(labels)-width:]
	}

	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		minPrice = math.Min(minPrice, *v)
		maxPrice = math.Max(maxPrice, *v)
	}
	if math.IsInf(minPrice, 1) {
		return mutedStyle.Render("Waiting for price data.")
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", len(values)))
	}

	latest := -1
	prevRow := -1
	for col, v := range values {
		if v == nil {
			prevRow = -1
			continue
		}
		row := chartRow(*v, minPrice, maxPrice, height)
		if prevRow >= 0 {
			lo, hi := prevRow, row
			if lo > hi {
				lo, hi = hi, lo
			}
			for r := lo + 1; r < hi; r++ {
				grid[r][col] = stemRune
			}
		}
		grid[row][col] = pointRune
		prevRow = row
		latest = col
	}
	grid[chartRow(*values[latest], minPrice, maxPrice, height)][latest] = latestRune

	top, bottom := formatPrice(maxPrice), formatPrice(minPrice)
	gutter := max(len(top), len(bottom))

	var b strings.Builder
	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}
		b.WriteString(strings.Repeat(" ", gutter-len(label)))
		b.WriteString(mutedStyle.Render(label))
		b.WriteString(" ┤")
		b.WriteString(chartStyle.Render(string(line)))
		b.WriteByte('\n')
	}

	if len(labels) > 0 {
		first, last := labels[0], labels[len(labels)-1]
		pad := len(values) - len(first) - len(last)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", gutter+2))
		b.WriteString(mutedStyle.Render(first + strings.Repeat(" ", pad) + last))
	}
	return b.String()
}

// chartRow maps price onto a grid row; row 0 is the top.
func chartRow(price, minPrice, maxPrice float64, height int) int {
	priceRange := maxPrice - minPrice
	if priceRange == 0 {
		return height / 2
	}
	scaled := (price - minPrice) / priceRange * float64(height-1)
	return height - 1 - int(math.Round(scaled))
}
