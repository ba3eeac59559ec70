package core

import "context"

type XKCD interface {
	LastID(ctx context.Context) (int, error)
	Get(ctx context.Context, id int) (Comic, error)
	Image(ctx context.Context, url string) ([]byte, error)
}

type Bot interface {
	SendPhoto(ctx context.Context, creds Credentials, photo []byte, caption string) error
}

type Events interface {
	PublishComicPosted(ctx context.Context, comic Comic)
}

// Picker returns a value in [0, n).
type Picker func(n int) int
