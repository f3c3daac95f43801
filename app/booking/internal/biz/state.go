package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// State is the in-memory store handle: trains with their seat maps, the
// user directory and the ticket ledger. It is built once at startup and
// passed by reference to the usecases.
type State struct {
	trains  []*Train
	byID    map[string]*Train
	Users   *UserDirectory
	Tickets *TicketLedger
}

func NewState(trains []*Train, users *UserDirectory, tickets *TicketLedger) (*State, error) {
	s := &State{
		byID:    make(map[string]*Train, len(trains)),
		Users:   users,
		Tickets: tickets,
	}
	for _, t := range trains {
		if _, dup := s.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate train id %s", t.ID)
		}
		s.byID[t.ID] = t
		s.trains = append(s.trains, t)
	}
	return s, nil
}

func (s *State) Train(id string) (*Train, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Trains returns the catalog in load order.
func (s *State) Trains() []*Train { return s.trains }

func (s *State) TrainStates() []*TrainState {
	out := make([]*TrainState, 0, len(s.trains))
	for _, t := range s.trains {
		out = append(out, t.State())
	}
	return out
}

func (s *State) UserStates() []*UserState {
	users := s.Users.List()
	out := make([]*UserState, 0, len(users))
	for _, u := range users {
		out = append(out, &UserState{User: u, Tickets: s.Tickets.ListFor(u.ID)})
	}
	return out
}

// Load builds the State from a catalog and audits it. Audit findings are
// logged, never corrected.
func Load(ctx context.Context, catalog CatalogLoader, logger log.Logger, opts ...LedgerOption) (*State, error) {
	helper := log.NewHelper(log.With(logger, "module", "biz/state"))

	trainStates, err := catalog.LoadTrains(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trains: %w", err)
	}
	trains := make([]*Train, 0, len(trainStates))
	for _, ts := range trainStates {
		t, err := NewTrain(ts)
		if err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}

	userStates, err := catalog.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	users := NewUserDirectory()
	ledger := NewTicketLedger(opts...)
	for _, us := range userStates {
		if err := users.Add(us.User); err != nil {
			return nil, fmt.Errorf("user %s: %w", us.Name, err)
		}
		if err := ledger.Restore(us.ID, us.Tickets); err != nil {
			return nil, fmt.Errorf("user %s: %w", us.Name, err)
		}
	}

	s, err := NewState(trains, users, ledger)
	if err != nil {
		return nil, err
	}
	report := s.Audit()
	for _, ta := range report.Trains {
		if len(ta.DanglingTickets) > 0 {
			helper.Errorf("train %s: tickets on free seats: %v", ta.TrainID, ta.DanglingTickets)
		}
		if len(ta.OrphanSeats) > 0 {
			helper.Warnf("train %s: occupied seats without tickets: %v", ta.TrainID, ta.OrphanSeats)
		}
	}
	for _, id := range report.UnknownTrainTickets {
		helper.Errorf("ticket %s references an unknown train", id)
	}
	helper.Infof("loaded %d trains, %d users, %d tickets", len(trains), len(userStates), len(ledger.All()))
	return s, nil
}
