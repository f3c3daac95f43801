package biz

import (
	"errors"
	"sync"
)

var errUserExists = errors.New("user name already taken")

// User holds credentials owned by the auth collaborator. Tickets live in
// the TicketLedger and are looked up by ID.
type User struct {
	ID           string
	Name         string
	PasswordHash string
}

// UserState is the persistable form of a user together with its tickets.
type UserState struct {
	User
	Tickets []Ticket
}

// UserDirectory indexes registered users by id and by name.
type UserDirectory struct {
	mu     sync.RWMutex
	order  []string
	byID   map[string]*User
	byName map[string]*User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{
		byID:   make(map[string]*User),
		byName: make(map[string]*User),
	}
}

func (d *UserDirectory) Add(u User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byName[u.Name]; ok {
		return errUserExists
	}
	if _, ok := d.byID[u.ID]; ok {
		return errUserExists
	}
	p := &u
	d.byID[u.ID] = p
	d.byName[u.Name] = p
	d.order = append(d.order, u.ID)
	return nil
}

func (d *UserDirectory) Get(id string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byID[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

func (d *UserDirectory) ByName(name string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byName[name]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// List returns users in registration order.
func (d *UserDirectory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]User, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.byID[id])
	}
	return out
}
