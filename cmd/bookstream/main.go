package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yanun0323/logs"

	"github.com/river-walras/nexuscore/bus"
	"github.com/river-walras/nexuscore/market"
	"github.com/river-walras/nexuscore/providers/binance"
)

var _ binance.Handler = &binance.Feed{}

func main() {
	symbols := flag.String("symbols", "BTCUSDT", "comma-separated symbols to stream")
	trades := flag.Bool("trades", true, "also stream trades")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Wire the bus: the feed publishes, the printers below subscribe.
	b := bus.NewMessageBus("bookstream")
	feed := binance.NewFeed(b)

	b.SubscribeQuotes("data.quotes.BINANCE.*", bus.NewHandler[market.QuoteTick]("print-quotes", func(q market.QuoteTick) {
		logs.Infof("%s", q)
	}), 0)
	b.SubscribeTrades("data.trades.BINANCE.*", bus.NewHandler[market.TradeTick]("print-trades", func(t market.TradeTick) {
		logs.Infof("%s", t)
	}), 0)

	// Connect the stream and pump payloads through the processor.
	client := binance.NewClient(binance.Config{
		Symbols: strings.Split(*symbols, ","),
		Speed:   binance.UpdateSpeedDeciSecond,
		Trades:  *trades,
	})
	payloads := make(chan []byte, 1024)
	if err := client.Stream(ctx, payloads); err != nil {
		logs.Errorf("failed to connect: %s", err)
		os.Exit(1)
	}

	processor := binance.NewProcessor(feed)
	for payload := range payloads {
		if err := processor.Process(payload); err != nil {
			logs.Warnf("dropping payload: %s", err)
		}
	}
}
