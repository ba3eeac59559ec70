package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"yadro.com/comicbot/poster/adapters/events"
	"yadro.com/comicbot/poster/adapters/telegram"
	"yadro.com/comicbot/poster/adapters/xkcd"
	"yadro.com/comicbot/poster/config"
	"yadro.com/comicbot/poster/core"
)

func main() {
	os.Exit(run(context.Background(), config.Source(), os.Stdout, nil))
}

// run posts one comic and returns the process exit code.
func run(ctx context.Context, envFile string, out io.Writer, pick core.Picker) int {
	cfg, err := config.Load(envFile)
	if err != nil {
		return report(out, err)
	}
	log, closeLog := mustMakeLogger(cfg.LogLevel, cfg.LogFile)
	defer closeLog()

	// Ctrl+C aborts the in-flight request
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	comic, err := post(ctx, cfg, log, pick)
	if err != nil {
		log.Error("posting failed", "kind", core.Classify(err).String(), "error", err)
		return report(out, err)
	}
	_, _ = fmt.Fprintf(out, "✅ comic #%d published\n", comic.ID)
	return exitOK
}

func post(ctx context.Context, cfg config.Config, log *slog.Logger, pick core.Picker) (core.Comic, error) {
	log.Debug("starting poster", "xkcd", cfg.XKCDURL, "channel", cfg.ChannelID)

	// xkcd adapter
	xkcdClient, err := xkcd.NewClient(cfg.XKCDURL, cfg.Timeout, log)
	if err != nil {
		return core.Comic{}, fmt.Errorf("%w: failed to create xkcd client: %v", core.ErrConfig, err)
	}

	// telegram adapter
	bot, err := telegram.NewClient(cfg.TelegramURL, cfg.Timeout, log)
	if err != nil {
		return core.Comic{}, fmt.Errorf("%w: failed to create telegram client: %v", core.ErrConfig, err)
	}

	// nats events are best effort
	var ev core.Events
	if cfg.BrokerAddress != "" {
		pub, err := events.NewPublisher(log, cfg.BrokerAddress, cfg.BrokerSubject, cfg.Timeout)
		if err != nil {
			log.Warn("comic events disabled", "error", err)
		} else {
			defer pub.Close()
			ev = pub
		}
	}

	svc, err := core.NewService(log, xkcdClient, bot, ev, pick)
	if err != nil {
		return core.Comic{}, fmt.Errorf("failed to create poster service: %w", err)
	}
	return svc.Run(ctx, cfg.Credentials())
}
