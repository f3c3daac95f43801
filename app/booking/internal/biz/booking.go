package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
)

// SeatChoice selects a specific seat, or any free seat when Any is set.
type SeatChoice struct {
	Seat Seat
	Any  bool
}

func AnySeat() SeatChoice { return SeatChoice{Any: true} }

func SeatAt(row, col int) SeatChoice { return SeatChoice{Seat: Seat{Row: row, Col: col}} }

// Receipt is a successful booking. Degraded is set when the ticket holds in
// memory but the durable write did not complete.
type Receipt struct {
	Ticket   Ticket
	Degraded *errors.Error
}

func (r *Receipt) Durable() bool { return r.Degraded == nil }

// Ack is a successful cancellation.
type Ack struct {
	Ticket   Ticket
	Degraded *errors.Error
}

func (a *Ack) Durable() bool { return a.Degraded == nil }

// BookingUsecase sequences route validation, seat reservation and ticket
// issue as one logical transaction, and the reverse for cancellation.
type BookingUsecase struct {
	state  *State
	mirror *Mirror
	log    *log.Helper
}

func NewBookingUsecase(state *State, mirror *Mirror, logger log.Logger) *BookingUsecase {
	return &BookingUsecase{
		state:  state,
		mirror: mirror,
		log:    log.NewHelper(log.With(logger, "module", "biz/booking")),
	}
}

func (uc *BookingUsecase) Book(ctx context.Context, userID, trainID, source, destination string, choice SeatChoice) (*Receipt, error) {
	train, ok := uc.state.Train(trainID)
	if !ok {
		return nil, v1.ErrorTrainNotFound("train %s not found", trainID)
	}
	if !train.Serves(source, destination) {
		return nil, v1.ErrorInvalidRoute("train %s does not run from %q to %q", trainID, source, destination)
	}

	seat := choice.Seat
	var res SeatResult
	if choice.Any {
		seat, res = train.Seats().ReserveAny()
	} else {
		res = train.Seats().Reserve(seat.Row, seat.Col)
	}
	if res != Reserved {
		if choice.Any {
			return nil, v1.ErrorSeatUnavailable("train %s: %s", trainID, res)
		}
		return nil, v1.ErrorSeatUnavailable("train %s seat %s: %s", trainID, seat, res)
	}

	ticket, err := uc.state.Tickets.Issue(userID, trainID, seat, source, destination)
	if err != nil {
		if rel := train.Seats().Release(seat.Row, seat.Col); rel != Released {
			uc.log.Errorf("compensating release of train %s seat %s: %s", trainID, seat, rel)
			return nil, v1.ErrorInconsistentState("train %s seat %s: compensation failed: %s", trainID, seat, rel).WithCause(err)
		}
		uc.log.Warnf("issue ticket for user %s on train %s seat %s: %v", userID, trainID, seat, err)
		return nil, v1.ErrorBookingFailed("booking train %s seat %s failed", trainID, seat).WithCause(err)
	}
	uc.log.Infof("user %s booked train %s seat %s ticket %s", userID, trainID, seat, ticket.ID)

	receipt := &Receipt{Ticket: ticket}
	if err := uc.mirror.Flush(ctx); err != nil {
		receipt.Degraded = v1.ErrorPersistenceDegraded("ticket %s is held but not yet durable", ticket.ID).WithCause(err)
	}
	return receipt, nil
}

// Cancel revokes the ticket first and frees the seat second. A crash in
// between leaves an occupied seat with no ticket, never a live ticket on a
// free seat.
func (uc *BookingUsecase) Cancel(ctx context.Context, userID, ticketID string) (*Ack, error) {
	ticket, ok := uc.state.Tickets.Find(userID, ticketID)
	if !ok {
		return nil, v1.ErrorTicketNotFound("ticket %q not found", ticketID)
	}
	train, ok := uc.state.Train(ticket.TrainID)
	if !ok {
		uc.log.Errorf("ticket %s references unknown train %s", ticket.ID, ticket.TrainID)
		return nil, v1.ErrorInconsistentState("ticket %s references unknown train %s", ticket.ID, ticket.TrainID)
	}
	if _, err := uc.state.Tickets.Revoke(userID, ticketID); err != nil {
		// lost a race with a concurrent cancel of the same ticket
		return nil, v1.ErrorTicketNotFound("ticket %q not found", ticketID)
	}

	seat := ticket.Seat
	if res := train.Seats().Release(seat.Row, seat.Col); res != Released {
		uc.log.Errorf("ticket %s revoked but train %s seat %s: %s", ticket.ID, train.ID, seat, res)
		return nil, v1.ErrorInconsistentState("ticket %s: train %s seat %s was %s", ticket.ID, train.ID, seat, res)
	}
	uc.log.Infof("user %s cancelled ticket %s, train %s seat %s released", userID, ticket.ID, train.ID, seat)

	ack := &Ack{Ticket: ticket}
	if err := uc.mirror.Flush(ctx); err != nil {
		ack.Degraded = v1.ErrorPersistenceDegraded("cancellation of ticket %s is not yet durable", ticket.ID).WithCause(err)
	}
	return ack, nil
}

func (uc *BookingUsecase) ListTickets(ctx context.Context, userID string) []Ticket {
	return uc.state.Tickets.ListFor(userID)
}

// FindTrains returns the trains that run from source to destination, in
// catalog order.
func (uc *BookingUsecase) FindTrains(ctx context.Context, source, destination string) []*Train {
	var out []*Train
	for _, t := range uc.state.Trains() {
		if t.Serves(source, destination) {
			out = append(out, t)
		}
	}
	return out
}

func (uc *BookingUsecase) SeatLayout(ctx context.Context, trainID string) ([][]bool, error) {
	train, ok := uc.state.Train(trainID)
	if !ok {
		return nil, v1.ErrorTrainNotFound("train %s not found", trainID)
	}
	return train.Seats().Snapshot(), nil
}

func (uc *BookingUsecase) Audit(ctx context.Context) AuditReport {
	report := uc.state.Audit()
	if !report.Consistent() {
		uc.log.Errorf("seat/ticket audit found inconsistencies")
	}
	return report
}
