package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// readJSON decodes path into v. A missing file is not an error; found
// reports whether anything was read.
func readJSON(path string, v interface{}) (found bool, err error) {
	if path == "" {
		return false, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// seed holds the catalogs a backend is initialised with when it is empty.
type seed struct {
	trains []trainRecord
	users  []userRecord
}

func loadSeed(trainsPath, usersPath string) (*seed, error) {
	s := &seed{}
	if _, err := readJSON(trainsPath, &s.trains); err != nil {
		return nil, fmt.Errorf("seed trains: %w", err)
	}
	if _, err := readJSON(usersPath, &s.users); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	for i := range s.trains {
		s.trains[i].Position = i
	}
	for i := range s.users {
		s.users[i].Position = i
	}
	return s, nil
}
