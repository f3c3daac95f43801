package service

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

// staticRepo serves a fixed catalog and discards writes.
type staticRepo struct {
	trains []*biz.TrainState
	users  []*biz.UserState
}

func (r staticRepo) LoadTrains(context.Context) ([]*biz.TrainState, error) { return r.trains, nil }
func (r staticRepo) LoadUsers(context.Context) ([]*biz.UserState, error)   { return r.users, nil }
func (staticRepo) SaveTrains(context.Context, []*biz.TrainState) error     { return nil }
func (staticRepo) SaveUsers(context.Context, []*biz.UserState) error       { return nil }

func newService(t *testing.T, repo staticRepo) *BookingService {
	t.Helper()
	logger := log.DefaultLogger
	state, err := biz.Load(context.Background(), repo, logger)
	require.NoError(t, err)
	mirror := biz.NewMirror(repo, state, 0, logger)
	auth := biz.NewAuthUsecase(biz.AuthConfig{Secret: []byte("k"), BcryptCost: 4}, state, mirror, logger)
	return NewBookingService(biz.NewBookingUsecase(state, mirror, logger), auth, logger)
}

func TestAuditReply(t *testing.T) {
	train := func(seats [][]bool) []*biz.TrainState {
		return []*biz.TrainState{{ID: "T1", No: "101", Stations: []string{"A", "B"}, Seats: seats}}
	}
	user := func(tickets ...biz.Ticket) []*biz.UserState {
		return []*biz.UserState{{User: biz.User{ID: "u1", Name: "ann"}, Tickets: tickets}}
	}

	tests := []struct {
		name    string
		repo    staticRepo
		want    bool
		unknown []string
		orphans []string
	}{
		{
			name: "consistent",
			repo: staticRepo{
				trains: train([][]bool{{true, false}}),
				users:  user(biz.Ticket{ID: "t1", TrainID: "T1", Seat: biz.Seat{Row: 0, Col: 0}, Source: "A", Destination: "B"}),
			},
			want: true,
		},
		{
			name: "ticket on unknown train",
			repo: staticRepo{
				trains: train([][]bool{{false, false}}),
				users:  user(biz.Ticket{ID: "t9", TrainID: "GONE", Seat: biz.Seat{Row: 0, Col: 0}, Source: "A", Destination: "B"}),
			},
			unknown: []string{"t9"},
		},
		{
			name: "orphan seat",
			repo: staticRepo{
				trains: train([][]bool{{false, true}}),
				users:  user(),
			},
			orphans: []string{"0-1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.repo)
			reply, err := svc.Audit(context.Background(), &v1.AuditRequest{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, reply.Consistent)
			assert.Equal(t, tt.unknown, reply.UnknownTrainTickets)
			require.Len(t, reply.Trains, 1)
			assert.Equal(t, tt.orphans, reply.Trains[0].OrphanSeats)
			assert.Equal(t, len(tt.orphans) == 0, reply.Trains[0].Consistent)
		})
	}
}
