package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

var (
	trainPrefix = []byte("train/")
	userPrefix  = []byte("user/")
)

// storedTrain and storedUser carry the catalog position, which the shared
// JSON layout leaves out.
type storedTrain struct {
	trainRecord
	Pos int `json:"position"`
}

type storedUser struct {
	userRecord
	Pos int `json:"position"`
}

// badgerRepo stores one JSON value per train and per user.
type badgerRepo struct {
	db   *badger.DB
	seed *seed
	log  *log.Helper
}

var _ biz.StateRepo = (*badgerRepo)(nil)

// badgerLogger routes badger's own logging through kratos.
type badgerLogger struct {
	h *log.Helper
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.h.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.h.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.h.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.h.Debugf(format, args...) }

func openBadger(dir string, inMemory bool, logger log.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(badgerLogger{h: log.NewHelper(log.With(logger, "module", "data/badger/engine"))})
	return badger.Open(opts)
}

func newBadgerRepo(db *badger.DB, sd *seed, logger log.Logger) *badgerRepo {
	return &badgerRepo{db: db, seed: sd, log: log.NewHelper(log.With(logger, "module", "data/badger"))}
}

func key(prefix []byte, id string) []byte {
	return append(append([]byte(nil), prefix...), id...)
}

// scan decodes every value under prefix.
func (r *badgerRepo) scan(prefix []byte, decode func([]byte) error) (int, error) {
	n := 0
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(decode); err != nil {
				return fmt.Errorf("key %s: %w", it.Item().Key(), err)
			}
			n++
		}
		return nil
	})
	return n, err
}

func (r *badgerRepo) LoadTrains(ctx context.Context) ([]*biz.TrainState, error) {
	var recs []trainRecord
	n, err := r.scan(trainPrefix, func(val []byte) error {
		var st storedTrain
		if err := json.Unmarshal(val, &st); err != nil {
			return err
		}
		st.Position = st.Pos
		recs = append(recs, st.trainRecord)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n == 0 && len(r.seed.trains) > 0 {
		r.log.Infof("seeding %d trains", len(r.seed.trains))
		recs = r.seed.trains
		if err := r.put(trainPrefix, len(recs), func(i int) (string, interface{}) {
			return recs[i].TrainID, storedTrain{recs[i], recs[i].Position}
		}); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Position < recs[j].Position })
	return trainStates(recs), nil
}

func (r *badgerRepo) LoadUsers(ctx context.Context) ([]*biz.UserState, error) {
	var recs []userRecord
	n, err := r.scan(userPrefix, func(val []byte) error {
		var su storedUser
		if err := json.Unmarshal(val, &su); err != nil {
			return err
		}
		su.Position = su.Pos
		recs = append(recs, su.userRecord)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n == 0 && len(r.seed.users) > 0 {
		r.log.Infof("seeding %d users", len(r.seed.users))
		recs = r.seed.users
		if err := r.put(userPrefix, len(recs), func(i int) (string, interface{}) {
			return recs[i].UserID, storedUser{recs[i], recs[i].Position}
		}); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Position < recs[j].Position })
	return userStates(recs)
}

// put writes n values in one batch.
func (r *badgerRepo) put(prefix []byte, n int, item func(i int) (string, interface{})) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for i := 0; i < n; i++ {
		id, v := item(i)
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if err := wb.Set(key(prefix, id), b); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (r *badgerRepo) SaveTrains(ctx context.Context, trains []*biz.TrainState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.put(trainPrefix, len(trains), func(i int) (string, interface{}) {
		return trains[i].ID, storedTrain{toTrainRecord(trains[i], i), i}
	})
}

func (r *badgerRepo) SaveUsers(ctx context.Context, users []*biz.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.put(userPrefix, len(users), func(i int) (string, interface{}) {
		return users[i].ID, storedUser{toUserRecord(users[i], i), i}
	})
}
