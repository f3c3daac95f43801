package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

// fileRepo keeps trains and users as two pretty-printed JSON documents.
type fileRepo struct {
	trainsPath string
	usersPath  string
	seed       *seed
	log        *log.Helper

	trainsMu sync.Mutex
	usersMu  sync.Mutex
}

var _ biz.StateRepo = (*fileRepo)(nil)

func newFileRepo(trainsPath, usersPath string, sd *seed, logger log.Logger) *fileRepo {
	return &fileRepo{
		trainsPath: trainsPath,
		usersPath:  usersPath,
		seed:       sd,
		log:        log.NewHelper(log.With(logger, "module", "data/file")),
	}
}

func (r *fileRepo) LoadTrains(ctx context.Context) ([]*biz.TrainState, error) {
	var recs []trainRecord
	found, err := readJSON(r.trainsPath, &recs)
	if err != nil {
		return nil, err
	}
	if !found {
		recs = r.seed.trains
		if recs == nil {
			recs = []trainRecord{}
		}
		r.log.Infof("seeding %s with %d trains", r.trainsPath, len(recs))
		if err := writeJSON(r.trainsPath, recs); err != nil {
			return nil, err
		}
	}
	return trainStates(recs), nil
}

func (r *fileRepo) LoadUsers(ctx context.Context) ([]*biz.UserState, error) {
	var recs []userRecord
	found, err := readJSON(r.usersPath, &recs)
	if err != nil {
		return nil, err
	}
	if !found {
		recs = r.seed.users
		if recs == nil {
			recs = []userRecord{}
		}
		r.log.Infof("seeding %s with %d users", r.usersPath, len(recs))
		if err := writeJSON(r.usersPath, recs); err != nil {
			return nil, err
		}
	}
	return userStates(recs)
}

func (r *fileRepo) SaveTrains(ctx context.Context, trains []*biz.TrainState) error {
	recs := make([]trainRecord, 0, len(trains))
	for i, t := range trains {
		recs = append(recs, toTrainRecord(t, i))
	}
	r.trainsMu.Lock()
	defer r.trainsMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeJSON(r.trainsPath, recs)
}

func (r *fileRepo) SaveUsers(ctx context.Context, users []*biz.UserState) error {
	recs := make([]userRecord, 0, len(users))
	for i, u := range users {
		recs = append(recs, toUserRecord(u, i))
	}
	r.usersMu.Lock()
	defer r.usersMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeJSON(r.usersPath, recs)
}

// writeJSON replaces path atomically: readers see the old or the new
// document, never a torn one.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
