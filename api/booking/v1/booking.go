package v1

type SignUpRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
type SignUpReply struct {
	UserId  string `json:"user_id"`
	Durable bool   `json:"durable"`
	Warning string `json:"warning,omitempty"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
type LoginReply struct {
	UserId       string `json:"user_id"`
	Token        string `json:"token"`
	ExpireAtUnix int64  `json:"expire_at_unix"`
}

type FindTrainsRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}
type FindTrainsReply struct {
	Trains []*Train `json:"trains"`
}

type Train struct {
	TrainId      string            `json:"train_id"`
	TrainNo      string            `json:"train_no"`
	Stations     []string          `json:"stations"`
	StationTimes map[string]string `json:"station_times,omitempty"`
	FreeSeats    int32             `json:"free_seats"`
}

type SeatLayoutRequest struct {
	TrainId string `json:"train_id"`
}
type SeatLayoutReply struct {
	TrainId string `json:"train_id"`
	// Seats holds one entry per row; 1 is occupied, 0 is free.
	Seats [][]int32 `json:"seats"`
}

// BookRequest asks for a seat on a train. Leaving both Row and Col unset
// books the first free seat.
type BookRequest struct {
	TrainId     string `json:"train_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Row         *int32 `json:"row,omitempty"`
	Col         *int32 `json:"col,omitempty"`
}
type BookReply struct {
	Ticket  *Ticket `json:"ticket"`
	Durable bool    `json:"durable"`
	Warning string  `json:"warning,omitempty"`
}

type Ticket struct {
	TicketId    string `json:"ticket_id"`
	UserId      string `json:"user_id"`
	TrainId     string `json:"train_id"`
	Row         int32  `json:"row"`
	Col         int32  `json:"col"`
	SeatNumber  string `json:"seat_number"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	BookedAt    int64  `json:"booked_at_unix"`
}

type ListTicketsRequest struct{}
type ListTicketsReply struct {
	Tickets []*Ticket `json:"tickets"`
}

type CancelRequest struct {
	TicketId string `json:"ticket_id"`
}
type CancelReply struct {
	Ok      bool   `json:"ok"`
	Durable bool   `json:"durable"`
	Warning string `json:"warning,omitempty"`
}

type AuditRequest struct{}
type AuditReply struct {
	Consistent          bool          `json:"consistent"`
	Trains              []*TrainAudit `json:"trains"`
	UnknownTrainTickets []string      `json:"unknown_train_tickets,omitempty"`
}

type TrainAudit struct {
	TrainId         string   `json:"train_id"`
	OccupiedSeats   int32    `json:"occupied_seats"`
	ActiveTickets   int32    `json:"active_tickets"`
	OrphanSeats     []string `json:"orphan_seats,omitempty"`
	DanglingTickets []string `json:"dangling_tickets,omitempty"`
	Consistent      bool     `json:"consistent"`
}
