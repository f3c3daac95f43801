package biz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errUnknownAccount    = errors.New("ledger: no account for user")
	errDuplicateTicketID = errors.New("ledger: ticket id already issued")
	errTicketNotFound    = errors.New("ledger: ticket not found")
)

// Ticket binds a user to one seat on one train. Tickets are values and
// never change after Issue.
type Ticket struct {
	ID          string
	UserID      string
	TrainID     string
	Seat        Seat
	Source      string
	Destination string
	BookedAt    time.Time
}

type account struct {
	mu      sync.Mutex
	tickets []Ticket
}

// TicketLedger is the authority on which tickets exist. Mutations for one
// user serialise on that user's account; different users never contend.
type TicketLedger struct {
	mu       sync.RWMutex
	accounts map[string]*account

	idMu sync.Mutex
	ids  map[string]struct{}

	newID func() string
	now   func() time.Time
}

type LedgerOption func(*TicketLedger)

// WithTicketIDs overrides the ticket id generator.
func WithTicketIDs(f func() string) LedgerOption {
	return func(l *TicketLedger) { l.newID = f }
}

func WithClock(f func() time.Time) LedgerOption {
	return func(l *TicketLedger) { l.now = f }
}

func NewTicketLedger(opts ...LedgerOption) *TicketLedger {
	l := &TicketLedger{
		accounts: make(map[string]*account),
		ids:      make(map[string]struct{}),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Open creates an empty account for userID if none exists.
func (l *TicketLedger) Open(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[userID]; !ok {
		l.accounts[userID] = &account{}
	}
}

// Restore loads persisted tickets into userID's account. It restores all of
// them or, on a duplicate id, none.
func (l *TicketLedger) Restore(userID string, tickets []Ticket) error {
	l.Open(userID)
	acct := l.account(userID)

	acct.mu.Lock()
	defer acct.mu.Unlock()
	for i, t := range tickets {
		if !l.claimID(t.ID) {
			for _, claimed := range tickets[:i] {
				l.dropID(claimed.ID)
			}
			return errDuplicateTicketID
		}
	}
	for _, t := range tickets {
		t.UserID = userID
		acct.tickets = append(acct.tickets, t)
	}
	return nil
}

func (l *TicketLedger) account(userID string) *account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.accounts[userID]
}

func (l *TicketLedger) claimID(id string) bool {
	l.idMu.Lock()
	defer l.idMu.Unlock()
	if _, ok := l.ids[id]; ok || id == "" {
		return false
	}
	l.ids[id] = struct{}{}
	return true
}

func (l *TicketLedger) dropID(id string) {
	l.idMu.Lock()
	defer l.idMu.Unlock()
	delete(l.ids, id)
}

// Issue appends a new ticket to userID's account. It never touches seats.
func (l *TicketLedger) Issue(userID, trainID string, seat Seat, source, destination string) (Ticket, error) {
	acct := l.account(userID)
	if acct == nil {
		return Ticket{}, errUnknownAccount
	}
	id := l.newID()
	if !l.claimID(id) {
		return Ticket{}, errDuplicateTicketID
	}
	t := Ticket{
		ID:          id,
		UserID:      userID,
		TrainID:     trainID,
		Seat:        seat,
		Source:      source,
		Destination: destination,
		BookedAt:    l.now(),
	}

	acct.mu.Lock()
	acct.tickets = append(acct.tickets, t)
	acct.mu.Unlock()
	return t, nil
}

// Revoke removes ticketID from userID's account and returns it.
func (l *TicketLedger) Revoke(userID, ticketID string) (Ticket, error) {
	acct := l.account(userID)
	if acct == nil || ticketID == "" {
		return Ticket{}, errTicketNotFound
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()
	for i, t := range acct.tickets {
		if t.ID == ticketID {
			acct.tickets = append(acct.tickets[:i:i], acct.tickets[i+1:]...)
			l.dropID(ticketID)
			return t, nil
		}
	}
	return Ticket{}, errTicketNotFound
}

func (l *TicketLedger) Find(userID, ticketID string) (Ticket, bool) {
	for _, t := range l.ListFor(userID) {
		if t.ID == ticketID {
			return t, true
		}
	}
	return Ticket{}, false
}

// ListFor returns userID's active tickets in issue order.
func (l *TicketLedger) ListFor(userID string) []Ticket {
	acct := l.account(userID)
	if acct == nil {
		return nil
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return append([]Ticket(nil), acct.tickets...)
}

// All returns every active ticket.
func (l *TicketLedger) All() []Ticket {
	l.mu.RLock()
	accts := make([]*account, 0, len(l.accounts))
	for _, a := range l.accounts {
		accts = append(accts, a)
	}
	l.mu.RUnlock()

	var out []Ticket
	for _, a := range accts {
		a.mu.Lock()
		out = append(out, a.tickets...)
		a.mu.Unlock()
	}
	return out
}
