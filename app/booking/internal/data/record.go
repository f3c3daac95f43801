package data

import (
	"fmt"
	"time"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

// trainRecord and userRecord keep the snake_case layout of trains.json
// and user.json so seed files load unchanged in every backend.
type trainRecord struct {
	TrainID      string            `json:"train_id" bson:"_id"`
	TrainNo      string            `json:"train_no" bson:"train_no"`
	Seats        [][]int           `json:"seats" bson:"seats"`
	StationTimes map[string]string `json:"station_times,omitempty" bson:"station_times,omitempty"`
	Stations     []string          `json:"stations" bson:"stations"`
	Position     int               `json:"-" bson:"position"`
}

type ticketRecord struct {
	TicketID    string    `json:"ticket_id" bson:"ticket_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	TrainID     string    `json:"train_id" bson:"train_id"`
	SeatNumber  string    `json:"seat_number" bson:"seat_number"`
	Source      string    `json:"source" bson:"source"`
	Destination string    `json:"destination" bson:"destination"`
	BookedAt    time.Time `json:"booked_at,omitempty" bson:"booked_at,omitempty"`
}

type userRecord struct {
	UserID         string         `json:"user_id" bson:"_id"`
	Name           string         `json:"name" bson:"name"`
	HashedPassword string         `json:"hashed_password" bson:"hashed_password"`
	TicketsBooked  []ticketRecord `json:"tickets_booked" bson:"tickets_booked"`
	Position       int            `json:"-" bson:"position"`
}

func toTrainRecord(t *biz.TrainState, pos int) trainRecord {
	seats := make([][]int, len(t.Seats))
	for i, row := range t.Seats {
		seats[i] = make([]int, len(row))
		for j, occupied := range row {
			if occupied {
				seats[i][j] = 1
			}
		}
	}
	return trainRecord{
		TrainID:      t.ID,
		TrainNo:      t.No,
		Seats:        seats,
		StationTimes: t.StationTimes,
		Stations:     t.Stations,
		Position:     pos,
	}
}

func (r trainRecord) state() *biz.TrainState {
	seats := make([][]bool, len(r.Seats))
	for i, row := range r.Seats {
		seats[i] = make([]bool, len(row))
		for j, v := range row {
			seats[i][j] = v != 0
		}
	}
	return &biz.TrainState{
		ID:           r.TrainID,
		No:           r.TrainNo,
		Stations:     r.Stations,
		StationTimes: r.StationTimes,
		Seats:        seats,
	}
}

func toTicketRecord(t biz.Ticket) ticketRecord {
	return ticketRecord{
		TicketID:    t.ID,
		UserID:      t.UserID,
		TrainID:     t.TrainID,
		SeatNumber:  t.Seat.String(),
		Source:      t.Source,
		Destination: t.Destination,
		BookedAt:    t.BookedAt,
	}
}

func (r ticketRecord) ticket() (biz.Ticket, error) {
	seat, err := biz.ParseSeat(r.SeatNumber)
	if err != nil {
		return biz.Ticket{}, fmt.Errorf("ticket %s: %w", r.TicketID, err)
	}
	return biz.Ticket{
		ID:          r.TicketID,
		UserID:      r.UserID,
		TrainID:     r.TrainID,
		Seat:        seat,
		Source:      r.Source,
		Destination: r.Destination,
		BookedAt:    r.BookedAt,
	}, nil
}

func toUserRecord(u *biz.UserState, pos int) userRecord {
	tickets := make([]ticketRecord, 0, len(u.Tickets))
	for _, t := range u.Tickets {
		tickets = append(tickets, toTicketRecord(t))
	}
	return userRecord{
		UserID:         u.ID,
		Name:           u.Name,
		HashedPassword: u.PasswordHash,
		TicketsBooked:  tickets,
		Position:       pos,
	}
}

func (r userRecord) state() (*biz.UserState, error) {
	us := &biz.UserState{User: biz.User{ID: r.UserID, Name: r.Name, PasswordHash: r.HashedPassword}}
	for _, tr := range r.TicketsBooked {
		t, err := tr.ticket()
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", r.UserID, err)
		}
		us.Tickets = append(us.Tickets, t)
	}
	return us, nil
}

func trainStates(recs []trainRecord) []*biz.TrainState {
	out := make([]*biz.TrainState, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.state())
	}
	return out
}

func userStates(recs []userRecord) ([]*biz.UserState, error) {
	out := make([]*biz.UserState, 0, len(recs))
	for _, r := range recs {
		us, err := r.state()
		if err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	return out, nil
}
