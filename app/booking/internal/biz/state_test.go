package biz

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrainValidation(t *testing.T) {
	_, err := NewTrain(&TrainState{ID: "x", Stations: []string{"A"}, Seats: grid(1, 1)})
	assert.ErrorIs(t, err, errTooFewStations)
	_, err = NewTrain(&TrainState{ID: "x", Stations: []string{"A", "B"}, Seats: [][]bool{{}}})
	assert.ErrorIs(t, err, errEmptySeatGrid)

	tr, err := NewTrain(&TrainState{ID: "x", Stations: []string{"A", "B"}, Seats: grid(1, 1), StationTimes: map[string]string{"A": "08:00"}})
	require.NoError(t, err)
	assert.True(t, tr.Serves("A", "B"))
	assert.Equal(t, "08:00", tr.State().StationTimes["A"])
}

func TestLoadAuditsWithoutCorrecting(t *testing.T) {
	seats := grid(2, 2)
	seats[0][0] = true // held by t1
	seats[1][1] = true // orphan
	repo := &memRepo{
		trains: []*TrainState{{ID: "T1", Stations: []string{"A", "B"}, Seats: seats}},
		users: []*UserState{{
			User: User{ID: "u1", Name: "ann"},
			Tickets: []Ticket{
				{ID: "t1", TrainID: "T1", Seat: Seat{0, 0}},
				{ID: "t2", TrainID: "T1", Seat: Seat{0, 1}}, // seat is free
				{ID: "t3", TrainID: "T9"},
			},
		}},
	}

	state, err := Load(context.Background(), repo, log.DefaultLogger)
	require.NoError(t, err)

	report := state.Audit()
	assert.False(t, report.Consistent())
	assert.Equal(t, []string{"t3"}, report.UnknownTrainTickets)
	require.Len(t, report.Trains, 1)
	ta := report.Trains[0]
	assert.Equal(t, 2, ta.OccupiedSeats)
	assert.Equal(t, 2, ta.ActiveTickets)
	assert.Equal(t, []Seat{{1, 1}}, ta.OrphanSeats)
	assert.Equal(t, []string{"t2"}, ta.DanglingTickets)

	train, _ := state.Train("T1")
	assert.True(t, train.Seats().IsOccupied(1, 1))
	assert.Len(t, state.Tickets.ListFor("u1"), 3)
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, &memRepo{trains: []*TrainState{
		{ID: "T1", Stations: []string{"A", "B"}, Seats: grid(1, 1)},
		{ID: "T1", Stations: []string{"A", "B"}, Seats: grid(1, 1)},
	}}, log.DefaultLogger)
	assert.Error(t, err)

	_, err = Load(ctx, &memRepo{users: []*UserState{
		{User: User{ID: "u1", Name: "ann"}},
		{User: User{ID: "u2", Name: "ann"}},
	}}, log.DefaultLogger)
	assert.ErrorIs(t, err, errUserExists)
}
