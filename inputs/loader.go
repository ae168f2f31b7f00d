package inputs

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/richinsley/goshadercanvas/graphics"
)

// DefaultFetchTimeout bounds a single fetch and decode.
const DefaultFetchTimeout = 30 * time.Second

// Loader fetches and decodes images off the render thread and hands the
// result back through the scheduler.
type Loader struct {
	Fetch     FetchFunc
	Scheduler graphics.Scheduler
	Timeout   time.Duration
}

// NewLoader returns a Loader using Fetch and DefaultFetchTimeout.
func NewLoader(s graphics.Scheduler) *Loader {
	return &Loader{Fetch: Fetch, Scheduler: s, Timeout: DefaultFetchTimeout}
}

// Load starts fetching src in a new goroutine. done runs exactly once, on the
// render thread, with either the decoded image or the error.
func (l *Loader) Load(src string, done func(image.Image, error)) {
	fetch := l.Fetch
	if fetch == nil {
		fetch = Fetch
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	log.Printf("Loading texture image: %s", src)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		img, err := fetch(ctx, src)
		l.Scheduler.Post(func() { done(img, err) })
	}()
}
