package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

type BookingService struct {
	booking *biz.BookingUsecase
	auth    *biz.AuthUsecase
	log     *log.Helper
}

var _ v1.BookingServiceHTTPServer = (*BookingService)(nil)

func NewBookingService(booking *biz.BookingUsecase, auth *biz.AuthUsecase, logger log.Logger) *BookingService {
	return &BookingService{
		booking: booking,
		auth:    auth,
		log:     log.NewHelper(log.With(logger, "module", "service/booking")),
	}
}

// caller returns the verified user id put in ctx by the jwt middleware.
func (s *BookingService) caller(ctx context.Context) (string, error) {
	claims, ok := jwt.FromContext(ctx)
	if !ok {
		return "", v1.ErrorInvalidCredentials("missing token")
	}
	return s.auth.UserFromClaims(claims)
}

func (s *BookingService) SignUp(ctx context.Context, in *v1.SignUpRequest) (*v1.SignUpReply, error) {
	reg, err := s.auth.SignUp(ctx, in.Name, in.Password)
	if err != nil {
		return nil, err
	}
	out := &v1.SignUpReply{UserId: reg.User.ID, Durable: reg.Durable()}
	if !reg.Durable() {
		out.Warning = reg.Degraded.Error()
	}
	return out, nil
}

func (s *BookingService) Login(ctx context.Context, in *v1.LoginRequest) (*v1.LoginReply, error) {
	sess, err := s.auth.Login(ctx, in.Name, in.Password)
	if err != nil {
		return nil, err
	}
	return &v1.LoginReply{UserId: sess.UserID, Token: sess.Token, ExpireAtUnix: sess.ExpireAt.Unix()}, nil
}

func (s *BookingService) FindTrains(ctx context.Context, in *v1.FindTrainsRequest) (*v1.FindTrainsReply, error) {
	if in.Source == "" || in.Destination == "" {
		return nil, v1.ErrorInvalidArgument("source and destination are required")
	}
	out := &v1.FindTrainsReply{Trains: []*v1.Train{}}
	for _, t := range s.booking.FindTrains(ctx, in.Source, in.Destination) {
		out.Trains = append(out.Trains, &v1.Train{
			TrainId:      t.ID,
			TrainNo:      t.No,
			Stations:     t.Stations,
			StationTimes: t.StationTimes,
			FreeSeats:    int32(t.Seats().Capacity() - t.Seats().Occupied()),
		})
	}
	return out, nil
}

func (s *BookingService) SeatLayout(ctx context.Context, in *v1.SeatLayoutRequest) (*v1.SeatLayoutReply, error) {
	grid, err := s.booking.SeatLayout(ctx, in.TrainId)
	if err != nil {
		return nil, err
	}
	out := &v1.SeatLayoutReply{TrainId: in.TrainId, Seats: make([][]int32, len(grid))}
	for i, row := range grid {
		out.Seats[i] = make([]int32, len(row))
		for j, occupied := range row {
			if occupied {
				out.Seats[i][j] = 1
			}
		}
	}
	return out, nil
}

func (s *BookingService) Book(ctx context.Context, in *v1.BookRequest) (*v1.BookReply, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	var choice biz.SeatChoice
	switch {
	case in.Row == nil && in.Col == nil:
		choice = biz.AnySeat()
	case in.Row != nil && in.Col != nil:
		choice = biz.SeatAt(int(*in.Row), int(*in.Col))
	default:
		return nil, v1.ErrorInvalidArgument("row and col must be given together")
	}

	receipt, err := s.booking.Book(ctx, userID, in.TrainId, in.Source, in.Destination, choice)
	if err != nil {
		return nil, err
	}
	out := &v1.BookReply{Ticket: ticketReply(receipt.Ticket), Durable: receipt.Durable()}
	if !receipt.Durable() {
		out.Warning = receipt.Degraded.Error()
	}
	return out, nil
}

func (s *BookingService) ListTickets(ctx context.Context, in *v1.ListTicketsRequest) (*v1.ListTicketsReply, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	out := &v1.ListTicketsReply{Tickets: []*v1.Ticket{}}
	for _, t := range s.booking.ListTickets(ctx, userID) {
		out.Tickets = append(out.Tickets, ticketReply(t))
	}
	return out, nil
}

func (s *BookingService) Cancel(ctx context.Context, in *v1.CancelRequest) (*v1.CancelReply, error) {
	userID, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	ack, err := s.booking.Cancel(ctx, userID, in.TicketId)
	if err != nil {
		return nil, err
	}
	out := &v1.CancelReply{Ok: true, Durable: ack.Durable()}
	if !ack.Durable() {
		out.Warning = ack.Degraded.Error()
	}
	return out, nil
}

func (s *BookingService) Audit(ctx context.Context, in *v1.AuditRequest) (*v1.AuditReply, error) {
	report := s.booking.Audit(ctx)
	out := &v1.AuditReply{
		Consistent:          report.Consistent(),
		UnknownTrainTickets: report.UnknownTrainTickets,
	}
	for _, ta := range report.Trains {
		item := &v1.TrainAudit{
			TrainId:         ta.TrainID,
			OccupiedSeats:   int32(ta.OccupiedSeats),
			ActiveTickets:   int32(ta.ActiveTickets),
			DanglingTickets: ta.DanglingTickets,
			Consistent:      ta.Consistent(),
		}
		for _, seat := range ta.OrphanSeats {
			item.OrphanSeats = append(item.OrphanSeats, seat.String())
		}
		out.Trains = append(out.Trains, item)
	}
	return out, nil
}

func ticketReply(t biz.Ticket) *v1.Ticket {
	out := &v1.Ticket{
		TicketId:    t.ID,
		UserId:      t.UserID,
		TrainId:     t.TrainID,
		Row:         int32(t.Seat.Row),
		Col:         int32(t.Seat.Col),
		SeatNumber:  t.Seat.String(),
		Source:      t.Source,
		Destination: t.Destination,
	}
	if !t.BookedAt.IsZero() {
		out.BookedAt = t.BookedAt.Unix()
	}
	return out
}
