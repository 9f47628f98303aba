package tui

import (
	"strings"

	"coinpulse/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

const chartHeight = 10

func (m *AppModel) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("coinpulse"))
	sections = append(sections, renderCoinButtons(m.snapshot, m.coinCursor, m.focus == focusCoins))
	sections = append(sections, m.input.View())
	if list := renderSuggestions(m.snapshot.Suggestions, m.suggestionCursor); list != "" {
		sections = append(sections, list)
	}

	coin, ok := m.snapshot.ActiveCoin()
	if ok {
		series := m.snapshot.Series[coin.ID]
		chartWidth := m.width - 20
		if chartWidth > domain.MaxSeriesPoints {
			chartWidth = domain.MaxSeriesPoints
		}
		body := lipgloss.JoinVertical(lipgloss.Left,
			renderPriceHeader(coin, series),
			"",
			renderChart(series, chartWidth, chartHeight),
		)
		sections = append(sections, panelStyle.Render(body))
		if h := renderHistory(m.snapshot.History[coin.ID]); h != "" {
			sections = append(sections, h)
		}
	}

	sections = append(sections, mutedStyle.Render(helpText(m.focus)))
	return strings.Join(sections, "\n")
}

func renderCoinButtons(snap domain.Snapshot, cursor int, focused bool) string {
	buttons := make([]string, 0, len(snap.Coins))
	for i, c := range snap.Coins {
		style := buttonStyle
		switch {
		case c.ID == snap.ActiveID:
			style = activeButtonStyle
		case focused && i == cursor:
			style = cursorButtonStyle
		}
		buttons = append(buttons, style.Render(c.Ticker))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func renderSuggestions(suggestions []domain.Suggestion, cursor int) string {
	if len(suggestions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		if s.NotFound || s.Coin == nil {
			lines = append(lines, mutedStyle.Render("  No coins found"))
			continue
		}
		line := s.Coin.Name + " (" + s.Coin.Ticker + ")"
		if i == cursor {
			lines = append(lines, highlightStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func renderPriceHeader(coin domain.Coin, series domain.Series) string {
	name := titleStyle.Render(coin.Name + " (" + coin.Ticker + ")")

	price := mutedStyle.Render("--")
	if latest := series.Latest(); latest != nil {
		price = priceStyle.Render(formatPrice(*latest))
	} else if last := lastKnown(series); last != nil {
		price = mutedStyle.Render(formatPrice(*last))
	}

	header := name + "  " + price
	if series.Error {
		header += "  " + errorStyle.Render("price fetch failed")
	}
	return header
}

func lastKnown(series domain.Series) *float64 {
	for i := len(series.Values) - 1; i >= 0; i-- {
		if series.Values[i] != nil {
			return series.Values[i]
		}
	}
	return nil
}

func helpText(f focus) string {
	if f == focusSearch {
		return "type to search • ↑/↓ pick • enter add • esc clear • tab coins • ctrl+c quit"
	}
	return "←/→ move • enter select • / or tab search • q quit"
}
