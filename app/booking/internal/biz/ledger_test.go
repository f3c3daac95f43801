package biz

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLedgerIssueAndList(t *testing.T) {
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	l := NewTicketLedger(WithClock(func() time.Time { return at }))
	l.Open("u1")

	a, err := l.Issue("u1", "T1", Seat{0, 0}, "A", "C")
	require.NoError(t, err)
	b, err := l.Issue("u1", "T1", Seat{0, 1}, "A", "B")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, at, a.BookedAt)
	assert.Equal(t, []Ticket{a, b}, l.ListFor("u1"))
	assert.Empty(t, l.ListFor("u2"))

	got, ok := l.Find("u1", b.ID)
	assert.True(t, ok)
	assert.Equal(t, b, got)
}

func TestLedgerIssueUnknownAccount(t *testing.T) {
	l := NewTicketLedger()
	_, err := l.Issue("ghost", "T1", Seat{0, 0}, "A", "B")
	assert.ErrorIs(t, err, errUnknownAccount)
}

func TestLedgerRejectsDuplicateIDs(t *testing.T) {
	l := NewTicketLedger(WithTicketIDs(func() string { return "same" }))
	l.Open("u1")
	l.Open("u2")

	_, err := l.Issue("u1", "T1", Seat{0, 0}, "A", "B")
	require.NoError(t, err)
	_, err = l.Issue("u2", "T1", Seat{0, 1}, "A", "B")
	assert.ErrorIs(t, err, errDuplicateTicketID)
	assert.Empty(t, l.ListFor("u2"))
}

func TestLedgerRevoke(t *testing.T) {
	l := NewTicketLedger()
	l.Open("u1")
	l.Open("u2")
	a, err := l.Issue("u1", "T1", Seat{0, 0}, "A", "B")
	require.NoError(t, err)
	b, err := l.Issue("u1", "T1", Seat{1, 0}, "A", "B")
	require.NoError(t, err)

	tests := []struct {
		name   string
		user   string
		ticket string
	}{
		{"unknown id", "u1", "nope"},
		{"wrong owner", "u2", a.ID},
		{"empty id", "u1", ""},
		{"unknown user", "ghost", a.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Revoke(tt.user, tt.ticket)
			assert.ErrorIs(t, err, errTicketNotFound)
		})
	}

	got, err := l.Revoke("u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, []Ticket{b}, l.ListFor("u1"))

	_, err = l.Revoke("u1", a.ID)
	assert.ErrorIs(t, err, errTicketNotFound)
}

func TestLedgerRestore(t *testing.T) {
	l := NewTicketLedger()
	require.NoError(t, l.Restore("u1", []Ticket{{ID: "t1", TrainID: "T1"}}))
	assert.Equal(t, "u1", l.ListFor("u1")[0].UserID)
	assert.ErrorIs(t, l.Restore("u2", []Ticket{{ID: "t1"}}), errDuplicateTicketID)
}

func TestLedgerRestoreIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		tickets []Ticket
	}{
		{"duplicate of existing", []Ticket{{ID: "a"}, {ID: "b"}, {ID: "t1"}}},
		{"duplicate within batch", []Ticket{{ID: "a"}, {ID: "b"}, {ID: "a"}}},
		{"empty id", []Ticket{{ID: "a"}, {ID: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewTicketLedger()
			require.NoError(t, l.Restore("u1", []Ticket{{ID: "t1", TrainID: "T1"}}))

			assert.ErrorIs(t, l.Restore("u2", tt.tickets), errDuplicateTicketID)
			assert.Empty(t, l.ListFor("u2"))
			require.NoError(t, l.Restore("u3", []Ticket{{ID: "a"}, {ID: "b"}}))
			assert.Len(t, l.ListFor("u3"), 2)
		})
	}
}

func TestLedgerConcurrentSameUser(t *testing.T) {
	l := NewTicketLedger()
	l.Open("u1")

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		i := i
		g.Go(func() error {
			tk, err := l.Issue("u1", "T1", Seat{Row: i}, "A", "B")
			if err != nil {
				return err
			}
			if i%2 == 0 {
				if _, err := l.Revoke("u1", tk.ID); err != nil {
					return fmt.Errorf("revoke %s: %w", tk.ID, err)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, l.ListFor("u1"), 25)
	assert.Len(t, l.All(), 25)
}
