package biz

import (
	"context"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/sync/errgroup"
)

// Mirror copies the in-memory state to a StateWriter. In-memory state is
// the source of truth; a failed flush leaves it untouched.
type Mirror struct {
	mu      sync.Mutex
	writer  StateWriter
	timeout time.Duration
	state   *State
	log     *log.Helper
}

func NewMirror(writer StateWriter, state *State, timeout time.Duration, logger log.Logger) *Mirror {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Mirror{
		writer:  writer,
		timeout: timeout,
		state:   state,
		log:     log.NewHelper(log.With(logger, "module", "biz/mirror")),
	}
}

// Flush writes trains and users. Flushes are serialised and each one takes
// its snapshot after the previous flush returned. Flush returns once the
// persist timeout expires even if a writer ignores ctx and is still running.
func (m *Mirror) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	trains := m.state.TrainStates()
	users := m.state.UserStates()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.writer.SaveTrains(gctx, trains) })
	g.Go(func() error { return m.writer.SaveUsers(gctx, users) })

	// A writer that ignores ctx may keep running after the deadline; its
	// result is dropped and the next flush rewrites the full state.
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		m.log.Warnf("flush of %d trains / %d users failed: %v", len(trains), len(users), err)
		return err
	}
	return nil
}
