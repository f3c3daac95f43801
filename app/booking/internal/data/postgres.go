package data

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

//go:embed schema/postgres.sql
var postgresSchema string

// postgresRepo keeps trains, users and tickets in three tables. Seat grids,
// stations and station times are JSONB columns.
type postgresRepo struct {
	db   *sqlx.DB
	seed *seed
	log  *log.Helper
}

var _ biz.StateRepo = (*postgresRepo)(nil)

type trainRow struct {
	TrainID      string `db:"train_id"`
	TrainNo      string `db:"train_no"`
	Position     int    `db:"position"`
	Stations     []byte `db:"stations"`
	StationTimes []byte `db:"station_times"`
	Seats        []byte `db:"seats"`
}

type userRow struct {
	UserID         string `db:"user_id"`
	Name           string `db:"name"`
	HashedPassword string `db:"hashed_password"`
	Position       int    `db:"position"`
}

type ticketRow struct {
	TicketID    string       `db:"ticket_id"`
	UserID      string       `db:"user_id"`
	TrainID     string       `db:"train_id"`
	SeatNumber  string       `db:"seat_number"`
	Source      string       `db:"source"`
	Destination string       `db:"destination"`
	BookedAt    sql.NullTime `db:"booked_at"`
	Position    int          `db:"position"`
}

func openPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func newPostgresRepo(db *sqlx.DB, sd *seed, logger log.Logger) *postgresRepo {
	return &postgresRepo{db: db, seed: sd, log: log.NewHelper(log.With(logger, "module", "data/postgres"))}
}

func (r *postgresRepo) LoadTrains(ctx context.Context) ([]*biz.TrainState, error) {
	var rows []trainRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT train_id, train_no, position, stations, station_times, seats FROM trains ORDER BY position`); err != nil {
		return nil, fmt.Errorf("select trains: %w", err)
	}
	if len(rows) == 0 && len(r.seed.trains) > 0 {
		r.log.Infof("seeding %d trains", len(r.seed.trains))
		states := trainStates(r.seed.trains)
		if err := r.SaveTrains(ctx, states); err != nil {
			return nil, err
		}
		return states, nil
	}

	recs := make([]trainRecord, 0, len(rows))
	for _, row := range rows {
		rec := trainRecord{TrainID: row.TrainID, TrainNo: row.TrainNo, Position: row.Position}
		if err := json.Unmarshal(row.Stations, &rec.Stations); err != nil {
			return nil, fmt.Errorf("train %s stations: %w", row.TrainID, err)
		}
		if err := json.Unmarshal(row.StationTimes, &rec.StationTimes); err != nil {
			return nil, fmt.Errorf("train %s station times: %w", row.TrainID, err)
		}
		if err := json.Unmarshal(row.Seats, &rec.Seats); err != nil {
			return nil, fmt.Errorf("train %s seats: %w", row.TrainID, err)
		}
		recs = append(recs, rec)
	}
	return trainStates(recs), nil
}

func (r *postgresRepo) LoadUsers(ctx context.Context) ([]*biz.UserState, error) {
	var users []userRow
	if err := r.db.SelectContext(ctx, &users, `SELECT user_id, name, hashed_password, position FROM users ORDER BY position`); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	if len(users) == 0 && len(r.seed.users) > 0 {
		r.log.Infof("seeding %d users", len(r.seed.users))
		states, err := userStates(r.seed.users)
		if err != nil {
			return nil, err
		}
		if err := r.SaveUsers(ctx, states); err != nil {
			return nil, err
		}
		return states, nil
	}

	var tickets []ticketRow
	if err := r.db.SelectContext(ctx, &tickets, `SELECT ticket_id, user_id, train_id, seat_number, source, destination, booked_at, position FROM tickets ORDER BY user_id, position`); err != nil {
		return nil, fmt.Errorf("select tickets: %w", err)
	}
	byUser := make(map[string][]ticketRecord)
	for _, t := range tickets {
		byUser[t.UserID] = append(byUser[t.UserID], ticketRecord{
			TicketID:    t.TicketID,
			UserID:      t.UserID,
			TrainID:     t.TrainID,
			SeatNumber:  t.SeatNumber,
			Source:      t.Source,
			Destination: t.Destination,
			BookedAt:    t.BookedAt.Time,
		})
	}

	recs := make([]userRecord, 0, len(users))
	for _, u := range users {
		recs = append(recs, userRecord{
			UserID:         u.UserID,
			Name:           u.Name,
			HashedPassword: u.HashedPassword,
			TicketsBooked:  byUser[u.UserID],
			Position:       u.Position,
		})
	}
	return userStates(recs)
}

// trainColumns encodes the JSONB columns of a trains row.
func trainColumns(rec trainRecord) (stations, times, seats []byte, err error) {
	if rec.StationTimes == nil {
		rec.StationTimes = map[string]string{}
	}
	if stations, err = json.Marshal(rec.Stations); err != nil {
		return nil, nil, nil, fmt.Errorf("encode stations of train %s: %w", rec.TrainID, err)
	}
	if times, err = json.Marshal(rec.StationTimes); err != nil {
		return nil, nil, nil, fmt.Errorf("encode station times of train %s: %w", rec.TrainID, err)
	}
	if seats, err = json.Marshal(rec.Seats); err != nil {
		return nil, nil, nil, fmt.Errorf("encode seats of train %s: %w", rec.TrainID, err)
	}
	return stations, times, seats, nil
}

func (r *postgresRepo) SaveTrains(ctx context.Context, trains []*biz.TrainState) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO trains (train_id, train_no, position, stations, station_times, seats)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (train_id) DO UPDATE SET
			train_no = EXCLUDED.train_no,
			position = EXCLUDED.position,
			stations = EXCLUDED.stations,
			station_times = EXCLUDED.station_times,
			seats = EXCLUDED.seats`
	for i, t := range trains {
		rec := toTrainRecord(t, i)
		stations, times, seats, err := trainColumns(rec)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert, rec.TrainID, rec.TrainNo, i, stations, times, seats); err != nil {
			return fmt.Errorf("upsert train %s: %w", rec.TrainID, err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) SaveUsers(ctx context.Context, users []*biz.UserState) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO users (user_id, name, hashed_password, position)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			hashed_password = EXCLUDED.hashed_password,
			position = EXCLUDED.position`
	ids := make([]string, 0, len(users))
	for i, u := range users {
		if _, err := tx.ExecContext(ctx, upsert, u.ID, u.Name, u.PasswordHash, i); err != nil {
			return fmt.Errorf("upsert user %s: %w", u.ID, err)
		}
		ids = append(ids, u.ID)
	}

	// tickets of the saved users are replaced wholesale
	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE user_id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("clear tickets: %w", err)
	}
	const insert = `INSERT INTO tickets (ticket_id, user_id, train_id, seat_number, source, destination, booked_at, position)
		VALUES (:ticket_id, :user_id, :train_id, :seat_number, :source, :destination, :booked_at, :position)`
	for _, u := range users {
		for i, t := range u.Tickets {
			rec := toTicketRecord(t)
			row := ticketRow{
				TicketID:    rec.TicketID,
				UserID:      u.ID,
				TrainID:     rec.TrainID,
				SeatNumber:  rec.SeatNumber,
				Source:      rec.Source,
				Destination: rec.Destination,
				BookedAt:    sql.NullTime{Time: rec.BookedAt, Valid: !rec.BookedAt.IsZero()},
				Position:    i,
			}
			if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
				return fmt.Errorf("insert ticket %s: %w", rec.TicketID, err)
			}
		}
	}
	return tx.Commit()
}
