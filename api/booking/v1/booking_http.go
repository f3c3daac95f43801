package v1

import (
	context "context"

	http "github.com/go-kratos/kratos/v2/transport/http"
	binding "github.com/go-kratos/kratos/v2/transport/http/binding"
)

var _ = new(context.Context)
var _ = binding.EncodeURL

const OperationBookingServiceSignUp = "/api.booking.v1.BookingService/SignUp"
const OperationBookingServiceLogin = "/api.booking.v1.BookingService/Login"
const OperationBookingServiceFindTrains = "/api.booking.v1.BookingService/FindTrains"
const OperationBookingServiceSeatLayout = "/api.booking.v1.BookingService/SeatLayout"
const OperationBookingServiceBook = "/api.booking.v1.BookingService/Book"
const OperationBookingServiceListTickets = "/api.booking.v1.BookingService/ListTickets"
const OperationBookingServiceCancel = "/api.booking.v1.BookingService/Cancel"
const OperationBookingServiceAudit = "/api.booking.v1.BookingService/Audit"

type BookingServiceHTTPServer interface {
	Audit(context.Context, *AuditRequest) (*AuditReply, error)
	Book(context.Context, *BookRequest) (*BookReply, error)
	Cancel(context.Context, *CancelRequest) (*CancelReply, error)
	FindTrains(context.Context, *FindTrainsRequest) (*FindTrainsReply, error)
	ListTickets(context.Context, *ListTicketsRequest) (*ListTicketsReply, error)
	Login(context.Context, *LoginRequest) (*LoginReply, error)
	SeatLayout(context.Context, *SeatLayoutRequest) (*SeatLayoutReply, error)
	SignUp(context.Context, *SignUpRequest) (*SignUpReply, error)
}

func RegisterBookingServiceHTTPServer(s *http.Server, srv BookingServiceHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/users", _BookingService_SignUp0_HTTP_Handler(srv))
	r.POST("/v1/sessions", _BookingService_Login0_HTTP_Handler(srv))
	r.GET("/v1/trains", _BookingService_FindTrains0_HTTP_Handler(srv))
	r.GET("/v1/trains/{train_id}/seats", _BookingService_SeatLayout0_HTTP_Handler(srv))
	r.POST("/v1/bookings", _BookingService_Book0_HTTP_Handler(srv))
	r.GET("/v1/bookings", _BookingService_ListTickets0_HTTP_Handler(srv))
	r.DELETE("/v1/bookings/{ticket_id}", _BookingService_Cancel0_HTTP_Handler(srv))
	r.GET("/v1/audit", _BookingService_Audit0_HTTP_Handler(srv))
}

func _BookingService_SignUp0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SignUpRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceSignUp)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SignUp(ctx, req.(*SignUpRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SignUpReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_Login0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in LoginRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceLogin)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Login(ctx, req.(*LoginRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*LoginReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_FindTrains0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in FindTrainsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceFindTrains)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.FindTrains(ctx, req.(*FindTrainsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*FindTrainsReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_SeatLayout0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in SeatLayoutRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceSeatLayout)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.SeatLayout(ctx, req.(*SeatLayoutRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*SeatLayoutReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_Book0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in BookRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceBook)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Book(ctx, req.(*BookRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*BookReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_ListTickets0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListTicketsRequest
		http.SetOperation(ctx, OperationBookingServiceListTickets)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListTickets(ctx, req.(*ListTicketsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*ListTicketsReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_Cancel0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in CancelRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationBookingServiceCancel)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Cancel(ctx, req.(*CancelRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*CancelReply)
		return ctx.Result(200, reply)
	}
}

func _BookingService_Audit0_HTTP_Handler(srv BookingServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in AuditRequest
		http.SetOperation(ctx, OperationBookingServiceAudit)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Audit(ctx, req.(*AuditRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*AuditReply)
		return ctx.Result(200, reply)
	}
}
