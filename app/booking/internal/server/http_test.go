package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/yunmaoQu/train-booking/api/booking/v1"
	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
	"github.com/yunmaoQu/train-booking/app/booking/internal/conf"
	"github.com/yunmaoQu/train-booking/app/booking/internal/service"
)

type catalog struct{}

func (catalog) LoadTrains(context.Context) ([]*biz.TrainState, error) {
	return []*biz.TrainState{{
		ID:       "T1",
		No:       "101",
		Stations: []string{"A", "B", "C"},
		Seats:    [][]bool{{false, false}, {false, false}},
	}}, nil
}

func (catalog) LoadUsers(context.Context) ([]*biz.UserState, error) { return nil, nil }
func (catalog) SaveTrains(context.Context, []*biz.TrainState) error { return nil }
func (catalog) SaveUsers(context.Context, []*biz.UserState) error   { return nil }

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.DefaultLogger
	state, err := biz.Load(context.Background(), catalog{}, logger)
	require.NoError(t, err)
	mirror := biz.NewMirror(catalog{}, state, time.Second, logger)
	auth := biz.NewAuthUsecase(biz.AuthConfig{Secret: []byte("k"), Issuer: "test", BcryptCost: 4}, state, mirror, logger)
	svc := service.NewBookingService(biz.NewBookingUsecase(state, mirror, logger), auth, logger)
	srv := NewHTTPServer(&conf.Server{}, auth, svc, logger)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTPBookingFlow(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	var signUp v1.SignUpReply
	require.Equal(t, 200, c.do("POST", "/v1/users", v1.SignUpRequest{Name: "ann", Password: "pw"}, &signUp))
	assert.NotEmpty(t, signUp.UserId)
	assert.True(t, signUp.Durable)

	var e errorBody
	assert.Equal(t, 409, c.do("POST", "/v1/users", v1.SignUpRequest{Name: "ann", Password: "pw"}, &e))
	assert.Equal(t, "USER_ALREADY_EXISTS", e.Reason)

	var login v1.LoginReply
	require.Equal(t, 200, c.do("POST", "/v1/sessions", v1.LoginRequest{Name: "ann", Password: "pw"}, &login))
	assert.Equal(t, signUp.UserId, login.UserId)

	var found v1.FindTrainsReply
	require.Equal(t, 200, c.do("GET", "/v1/trains?source=A&destination=C", nil, &found))
	require.Len(t, found.Trains, 1)
	assert.Equal(t, int32(4), found.Trains[0].FreeSeats)

	row, col := int32(0), int32(1)
	req := v1.BookRequest{TrainId: "T1", Source: "A", Destination: "C", Row: &row, Col: &col}
	assert.Equal(t, 401, c.do("POST", "/v1/bookings", req, nil))

	c.token = login.Token
	var booked v1.BookReply
	require.Equal(t, 200, c.do("POST", "/v1/bookings", req, &booked))
	assert.Equal(t, "0-1", booked.Ticket.SeatNumber)
	assert.True(t, booked.Durable)

	e = errorBody{}
	assert.Equal(t, 409, c.do("POST", "/v1/bookings", req, &e))
	assert.Equal(t, "SEAT_UNAVAILABLE", e.Reason)

	e = errorBody{}
	back := v1.BookRequest{TrainId: "T1", Source: "C", Destination: "A"}
	assert.Equal(t, 400, c.do("POST", "/v1/bookings", back, &e))
	assert.Equal(t, "INVALID_ROUTE", e.Reason)

	var layout v1.SeatLayoutReply
	require.Equal(t, 200, c.do("GET", "/v1/trains/T1/seats", nil, &layout))
	assert.Equal(t, [][]int32{{0, 1}, {0, 0}}, layout.Seats)

	var list v1.ListTicketsReply
	require.Equal(t, 200, c.do("GET", "/v1/bookings", nil, &list))
	require.Len(t, list.Tickets, 1)

	var cancel v1.CancelReply
	require.Equal(t, 200, c.do("DELETE", "/v1/bookings/"+booked.Ticket.TicketId, nil, &cancel))
	assert.True(t, cancel.Ok)

	e = errorBody{}
	assert.Equal(t, 404, c.do("DELETE", "/v1/bookings/"+booked.Ticket.TicketId, nil, &e))
	assert.Equal(t, "TICKET_NOT_FOUND", e.Reason)

	var audit v1.AuditReply
	require.Equal(t, 200, c.do("GET", "/v1/audit", nil, &audit))
	assert.True(t, audit.Consistent)
	require.Len(t, audit.Trains, 1)
	assert.Equal(t, int32(0), audit.Trains[0].OccupiedSeats)
}

func TestHTTPRejectsForeignToken(t *testing.T) {
	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL, token: "not-a-jwt"}
	assert.Equal(t, 401, c.do("GET", "/v1/bookings", nil, nil))

	e := errorBody{}
	assert.Equal(t, 404, c.do("GET", "/v1/trains/T9/seats", nil, &e))
	assert.Equal(t, "TRAIN_NOT_FOUND", e.Reason)
}
