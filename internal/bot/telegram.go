package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	tele "gopkg.in/telebot.v3"
)

const commandTimeout = 10 * time.Second

// Dashboard is the state the bot reports on and mutates.
type Dashboard interface {
	TrackedCoins() []domain.Coin
	Series(id string) domain.Series
	Search(ctx context.Context, query string) []domain.Suggestion
	Add(coin domain.Coin) error
}

var printer = message.NewPrinter(language.English)

// StartTelegramBot starts long polling in the background. An empty token
// disables the bot.
func StartTelegramBot(token string, dashboard Dashboard) error {
	if token == "" {
		zap.L().Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return fmt.Errorf("create Telegram bot: %w", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/coins", func(c tele.Context) error {
		return c.Send(coinsReply(dashboard))
	})

	b.Handle("/price", func(c tele.Context) error {
		return c.Send(priceReply(dashboard, c.Args()))
	})

	b.Handle("/search", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(searchReply(ctx, dashboard, c.Args()))
	})

	b.Handle("/add", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return c.Send(addReply(ctx, dashboard, c.Args()))
	})

	zap.L().Info("Telegram bot started")
	go b.Start()
	return nil
}

func coinsReply(d Dashboard) string {
	coins := d.TrackedCoins()
	lines := make([]string, 0, len(coins)+1)
	lines = append(lines, "Tracked coins:")
	for _, c := range coins {
		lines = append(lines, fmt.Sprintf("%s  %s (%s)", c.Ticker, c.Name, c.ID))
	}
	return strings.Join(lines, "\n")
}

func priceReply(d Dashboard, args []string) string {
	if len(args) == 0 {
		return "Usage: /price BTC\n" + supported(d)
	}
	coin, ok := findTracked(d, args[0])
	if !ok {
		return fmt.Sprintf("Unknown coin: %s\n%s", args[0], supported(d))
	}

	series := d.Series(coin.ID)
	latest := series.Latest()
	if latest == nil {
		if series.Error {
			return fmt.Sprintf("%s\nLast price fetch failed, try again shortly.", coin.Ticker)
		}
		return fmt.Sprintf("%s\nNo price yet, try again shortly.", coin.Ticker)
	}
	return printer.Sprintf("%s (%s)\nPrice: $%.2f\nAs of: %s", coin.Name, coin.Ticker, *latest, series.Labels[len(series.Labels)-1])
}

// searchReply runs the query through the shared dashboard, so the web and
// terminal views show the same query and suggestions afterwards.
func searchReply(ctx context.Context, d Dashboard, args []string) string {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return "Usage: /search dogecoin"
	}
	suggestions := d.Search(ctx, query)
	if len(suggestions) == 0 || suggestions[0].NotFound {
		return "No coins found for " + query
	}
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("%s  %s (%s)", s.Coin.Ticker, s.Coin.Name, s.Coin.ID))
	}
	return strings.Join(lines, "\n")
}

// addReply searches like searchReply, then adds the top match and makes it
// the active coin.
func addReply(ctx context.Context, d Dashboard, args []string) string {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return "Usage: /add dogecoin"
	}
	suggestions := d.Search(ctx, query)
	if len(suggestions) == 0 || suggestions[0].NotFound || suggestions[0].Coin == nil {
		return "No coins found for " + query
	}
	coin := *suggestions[0].Coin
	if err := d.Add(coin); err != nil {
		return fmt.Sprintf("Could not add %s: %v", coin.Ticker, err)
	}
	return fmt.Sprintf("Now tracking %s (%s)", coin.Name, coin.Ticker)
}

// findTracked matches a tracked coin by id or ticker, case-insensitively.
func findTracked(d Dashboard, arg string) (domain.Coin, bool) {
	arg = strings.TrimSpace(arg)
	for _, c := range d.TrackedCoins() {
		if strings.EqualFold(c.ID, arg) || strings.EqualFold(c.Ticker, arg) {
			return c, true
		}
	}
	return domain.Coin{}, false
}

func supported(d Dashboard) string {
	coins := d.TrackedCoins()
	tickers := make([]string, 0, len(coins))
	for _, c := range coins {
		tickers = append(tickers, c.Ticker)
	}
	return "Supported: " + strings.Join(tickers, ", ")
}
