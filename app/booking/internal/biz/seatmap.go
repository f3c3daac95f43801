package biz

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// SeatResult is the outcome of a seat map operation.
type SeatResult int

const (
	Reserved SeatResult = iota
	AlreadyOccupied
	OutOfRange
	Released
	NotOccupied
	SoldOut
)

func (r SeatResult) String() string {
	switch r {
	case Reserved:
		return "reserved"
	case AlreadyOccupied:
		return "already occupied"
	case OutOfRange:
		return "out of range"
	case Released:
		return "released"
	case NotOccupied:
		return "not occupied"
	case SoldOut:
		return "sold out"
	}
	return "unknown"
}

// Seat is a (row, column) coordinate in a train's seat grid.
type Seat struct {
	Row int
	Col int
}

func (s Seat) String() string { return fmt.Sprintf("%d-%d", s.Row, s.Col) }

// ParseSeat decodes the "row-col" form produced by Seat.String.
func ParseSeat(s string) (Seat, error) {
	r, c, ok := strings.Cut(s, "-")
	if !ok {
		return Seat{}, fmt.Errorf("seat %q: want row-col", s)
	}
	row, err := strconv.Atoi(r)
	if err != nil {
		return Seat{}, fmt.Errorf("seat %q: bad row: %w", s, err)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return Seat{}, fmt.Errorf("seat %q: bad column: %w", s, err)
	}
	return Seat{Row: row, Col: col}, nil
}

// SeatMap owns the occupancy grid of one train. Every check-and-set runs
// under the map's own mutex, so trains never contend with each other.
type SeatMap struct {
	mu   sync.Mutex
	grid [][]bool
}

// NewSeatMap copies grid; rows may have different lengths.
func NewSeatMap(grid [][]bool) *SeatMap {
	return &SeatMap{grid: cloneGrid(grid)}
}

func (m *SeatMap) inRange(row, col int) bool {
	return row >= 0 && row < len(m.grid) && col >= 0 && col < len(m.grid[row])
}

func (m *SeatMap) Reserve(row, col int) SeatResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inRange(row, col) {
		return OutOfRange
	}
	if m.grid[row][col] {
		return AlreadyOccupied
	}
	m.grid[row][col] = true
	return Reserved
}

// ReserveAny reserves the first free seat in row-major order.
func (m *SeatMap) ReserveAny() (Seat, SeatResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for r, row := range m.grid {
		for c, occupied := range row {
			if !occupied {
				row[c] = true
				return Seat{Row: r, Col: c}, Reserved
			}
		}
	}
	return Seat{}, SoldOut
}

// Release frees a seat. Releasing a free seat reports NotOccupied and
// leaves the grid untouched; callers treat that as a desync signal.
func (m *SeatMap) Release(row, col int) SeatResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inRange(row, col) {
		return OutOfRange
	}
	if !m.grid[row][col] {
		return NotOccupied
	}
	m.grid[row][col] = false
	return Released
}

func (m *SeatMap) IsOccupied(row, col int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inRange(row, col) && m.grid[row][col]
}

// Snapshot returns a copy of the grid.
func (m *SeatMap) Snapshot() [][]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneGrid(m.grid)
}

func (m *SeatMap) Occupied() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, row := range m.grid {
		for _, occupied := range row {
			if occupied {
				n++
			}
		}
	}
	return n
}

func (m *SeatMap) Capacity() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, row := range m.grid {
		n += len(row)
	}
	return n
}

func cloneGrid(grid [][]bool) [][]bool {
	out := make([][]bool, len(grid))
	for i, row := range grid {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
