package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"yadro.com/comicbot/poster/core"
)

type comicPosted struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	ImageURL string    `json:"img"`
	PostedAt time.Time `json:"posted_at"`
}

// Publisher announces posted comics on a NATS subject.
type Publisher struct {
	log     *slog.Logger
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewPublisher(log *slog.Logger, addr, subject string, timeout time.Duration) (*Publisher, error) {
	if subject == "" {
		return nil, errors.New("empty broker subject")
	}
	nc, err := nats.Connect(addr, nats.Timeout(timeout))
	if err != nil {
		log.Error("failed to connect to nats", "address", addr, "error", err)
		return nil, err
	}
	log.Debug("connected to broker", "address", addr, "subject", subject)
	return &Publisher{log: log, nc: nc, subject: subject, timeout: timeout}, nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

func (p *Publisher) PublishComicPosted(ctx context.Context, comic core.Comic) {
	if p.nc == nil {
		return
	}
	data, err := json.Marshal(comicPosted{
		ID:       comic.ID,
		Title:    comic.Title,
		ImageURL: comic.ImageURL,
		PostedAt: time.Now().UTC(),
	})
	if err != nil {
		p.log.Error("failed to encode comic posted event", "error", err)
		return
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		p.log.Error("failed to publish comic posted", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.nc.FlushWithContext(ctx); err != nil {
		p.log.Warn("failed to flush nats connection", "error", err)
	}
}
