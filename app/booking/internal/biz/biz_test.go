package biz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// memRepo is an in-memory StateRepo that records the last saved state.
type memRepo struct {
	mu     sync.Mutex
	trains []*TrainState
	users  []*UserState
	saves  int
	fail   error
}

func (r *memRepo) LoadTrains(context.Context) ([]*TrainState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trains, nil
}

func (r *memRepo) LoadUsers(context.Context) ([]*UserState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users, nil
}

func (r *memRepo) SaveTrains(_ context.Context, trains []*TrainState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.trains = trains
	r.saves++
	return nil
}

func (r *memRepo) SaveUsers(_ context.Context, users []*UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.users = users
	return nil
}

func (r *memRepo) setFail(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}

func grid(rows, cols int) [][]bool {
	g := make([][]bool, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	return g
}

type fixture struct {
	repo    *memRepo
	state   *State
	booking *BookingUsecase
	auth    *AuthUsecase
}

// newFixture loads train T1 [A B C] with a 2x2 grid and users u1, u2.
func newFixture(t *testing.T, opts ...LedgerOption) *fixture {
	t.Helper()
	repo := &memRepo{
		trains: []*TrainState{
			{ID: "T1", No: "101", Stations: []string{"A", "B", "C"}, Seats: grid(2, 2)},
			{ID: "T2", No: "202", Stations: []string{"C", "B", "A"}, Seats: grid(1, 3)},
		},
		users: []*UserState{
			{User: User{ID: "u1", Name: "ann"}},
			{User: User{ID: "u2", Name: "bob"}},
		},
	}
	state, err := Load(context.Background(), repo, log.DefaultLogger, opts...)
	require.NoError(t, err)
	mirror := NewMirror(repo, state, 0, log.DefaultLogger)
	return &fixture{
		repo:    repo,
		state:   state,
		booking: NewBookingUsecase(state, mirror, log.DefaultLogger),
		auth:    NewAuthUsecase(AuthConfig{Secret: []byte("test-secret"), Issuer: "test", BcryptCost: 4}, state, mirror, log.DefaultLogger),
	}
}

// stallRepo is a memRepo whose writes sleep and ignore ctx.
type stallRepo struct {
	memRepo
	stall time.Duration
}

func (r *stallRepo) SaveTrains(ctx context.Context, trains []*TrainState) error {
	time.Sleep(r.stall)
	return r.memRepo.SaveTrains(ctx, trains)
}
