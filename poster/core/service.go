package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	captionPrefix    = "🎨 "
	maxCaptionUnits  = 1024
	firstComicNumber = 1
)

type Service struct {
	log    *slog.Logger
	xkcd   XKCD
	bot    Bot
	events Events
	pick   Picker
}

// NewService wires the poster. events may be nil, pick defaults to math/rand.
func NewService(log *slog.Logger, xkcd XKCD, bot Bot, events Events, pick Picker) (*Service, error) {
	if log == nil || xkcd == nil || bot == nil {
		return nil, ErrNilDependency
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &Service{
		log:    log,
		xkcd:   xkcd,
		bot:    bot,
		events: events,
		pick:   pick,
	}, nil
}

func (s *Service) LatestID(ctx context.Context) (int, error) {
	last, err := s.xkcd.LastID(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest comic: %w", err)
	}
	if last < firstComicNumber {
		return 0, fmt.Errorf("%w: latest comic number %d", ErrDataShape, last)
	}
	return last, nil
}

// Pick selects a comic number uniformly from [1, latest].
func (s *Service) Pick(latest int) (int, error) {
	if latest < firstComicNumber {
		return 0, fmt.Errorf("%w: latest comic number %d", ErrDataShape, latest)
	}
	n := s.pick(latest)
	if n < 0 {
		n = 0
	}
	if n >= latest {
		n = latest - 1
	}
	return n + firstComicNumber, nil
}

func (s *Service) Fetch(ctx context.Context, id int) (Comic, error) {
	if id < firstComicNumber {
		return Comic{}, fmt.Errorf("%w: comic id %d", ErrBadArguments, id)
	}
	comic, err := s.xkcd.Get(ctx, id)
	if err != nil {
		return Comic{}, fmt.Errorf("comic %d: %w", id, err)
	}
	return comic, nil
}

func (s *Service) Publish(ctx context.Context, creds Credentials, comic Comic) error {
	photo, err := s.xkcd.Image(ctx, comic.ImageURL)
	if err != nil {
		return fmt.Errorf("comic %d image: %w", comic.ID, err)
	}
	s.log.Debug("image downloaded", "id", comic.ID, "bytes", len(photo))

	if err := s.bot.SendPhoto(ctx, creds, photo, Caption(comic)); err != nil {
		return fmt.Errorf("send comic %d: %w", comic.ID, err)
	}
	s.log.Info("comic posted", "id", comic.ID, "channel", creds.ChannelID)

	if s.events != nil {
		s.events.PublishComicPosted(ctx, comic)
	}
	return nil
}

// Run posts one random comic and returns it.
func (s *Service) Run(ctx context.Context, creds Credentials) (Comic, error) {
	last, err := s.LatestID(ctx)
	if err != nil {
		return Comic{}, err
	}
	id, err := s.Pick(last)
	if err != nil {
		return Comic{}, err
	}
	s.log.Info("comic selected", "id", id, "latest", last)

	comic, err := s.Fetch(ctx, id)
	if err != nil {
		return Comic{}, err
	}
	if err := s.Publish(ctx, creds, comic); err != nil {
		return Comic{}, err
	}
	return comic, nil
}

// Caption is the text posted along with the comic image.
func Caption(comic Comic) string {
	return truncateUTF16(captionPrefix+comic.Caption, maxCaptionUnits)
}

// truncateUTF16 cuts s on a rune boundary so that it fits into limit UTF-16
// code units, the unit Telegram measures caption length in.
func truncateUTF16(s string, limit int) string {
	i, n := 0, 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		units := utf16.RuneLen(r)
		if units < 0 {
			units = 1
		}
		if n+units > limit {
			return s[:i]
		}
		n += units
		i += size
	}
	return s
}
