package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// chartColors cycle through the slices, matching the dashboard's palette.
var chartColors = []lipgloss.Color{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042",
	"#8884d8", "#82ca9d", "#ffc658", "#ff7300",
}

var (
	barLabelStyle = lipgloss.NewStyle().Width(22)
	barValueStyle = lipgloss.NewStyle().Faint(true)
)

// FormatUSD renders an amount as US currency.
func FormatUSD(amount decimal.Decimal) string {
	formatted := "$" + addThousands(amount.Abs().StringFixed(2))
	if amount.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

func addThousands(s string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

// RenderBars draws a horizontal bar chart for a breakdown, one row per
// slice, scaled so the largest slice fills width characters.
func RenderBars(b Breakdown, width int) string {
	if len(b.Slices) == 0 {
		return "No expenses in categories"
	}
	if width < 10 {
		width = 10
	}

	largest := decimal.Zero
	for _, s := range b.Slices {
		if s.Total.GreaterThan(largest) {
			largest = s.Total
		}
	}

	var rows []string
	for i, s := range b.Slices {
		barLen := 0
		if largest.IsPositive() {
			ratio, _ := s.Total.Div(largest).Float64()
			barLen = int(ratio * float64(width))
		}
		if barLen < 1 {
			barLen = 1
		}

		bar := lipgloss.NewStyle().
			Foreground(chartColors[i%len(chartColors)]).
			Render(strings.Repeat("█", barLen))

		rows = append(rows, fmt.Sprintf("%s %s %s",
			barLabelStyle.Render(s.Name),
			bar,
			barValueStyle.Render(fmt.Sprintf("%s (%.1f%%)", FormatUSD(s.Total), s.Percent)),
		))
	}

	return strings.Join(rows, "\n")
}
