package biz

import (
	"errors"
	"fmt"
)

var (
	errTooFewStations = errors.New("train needs at least two stations")
	errEmptySeatGrid  = errors.New("train has no seats")
)

// Train is an immutable identity plus the seat map it owns.
type Train struct {
	ID           string
	No           string
	Stations     []string
	StationTimes map[string]string

	seats *SeatMap
}

// TrainState is the persistable form of a train.
type TrainState struct {
	ID           string
	No           string
	Stations     []string
	StationTimes map[string]string
	Seats        [][]bool
}

func NewTrain(st *TrainState) (*Train, error) {
	if len(st.Stations) < 2 {
		return nil, fmt.Errorf("train %s: %w", st.ID, errTooFewStations)
	}
	seats := 0
	for _, row := range st.Seats {
		seats += len(row)
	}
	if seats == 0 {
		return nil, fmt.Errorf("train %s: %w", st.ID, errEmptySeatGrid)
	}
	times := make(map[string]string, len(st.StationTimes))
	for k, v := range st.StationTimes {
		times[k] = v
	}
	return &Train{
		ID:           st.ID,
		No:           st.No,
		Stations:     append([]string(nil), st.Stations...),
		StationTimes: times,
		seats:        NewSeatMap(st.Seats),
	}, nil
}

// Serves reports whether the train runs from source to destination.
func (t *Train) Serves(source, destination string) bool {
	return ValidRoute(t.Stations, source, destination)
}

func (t *Train) Seats() *SeatMap { return t.seats }

func (t *Train) State() *TrainState {
	return &TrainState{
		ID:           t.ID,
		No:           t.No,
		Stations:     append([]string(nil), t.Stations...),
		StationTimes: t.StationTimes,
		Seats:        t.seats.Snapshot(),
	}
}
