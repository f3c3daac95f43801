package biz

import "sort"

// TrainAudit compares one train's seat map with the tickets that point at it.
type TrainAudit struct {
	TrainID         string
	OccupiedSeats   int
	ActiveTickets   int
	OrphanSeats     []Seat   // occupied with no ticket
	DanglingTickets []string // ticket ids whose seat is free or shared
}

func (a TrainAudit) Consistent() bool {
	return a.OccupiedSeats == a.ActiveTickets && len(a.OrphanSeats) == 0 && len(a.DanglingTickets) == 0
}

type AuditReport struct {
	Trains              []TrainAudit
	UnknownTrainTickets []string
}

func (r AuditReport) Consistent() bool {
	if len(r.UnknownTrainTickets) > 0 {
		return false
	}
	for _, t := range r.Trains {
		if !t.Consistent() {
			return false
		}
	}
	return true
}

// Audit checks the seat/ticket bijection for every train. The result is
// only exact while no booking or cancellation is in flight.
func (s *State) Audit() AuditReport {
	byTrain := make(map[string][]Ticket)
	var report AuditReport
	for _, t := range s.Tickets.All() {
		if _, ok := s.byID[t.TrainID]; !ok {
			report.UnknownTrainTickets = append(report.UnknownTrainTickets, t.ID)
			continue
		}
		byTrain[t.TrainID] = append(byTrain[t.TrainID], t)
	}
	sort.Strings(report.UnknownTrainTickets)

	for _, train := range s.trains {
		grid := train.Seats().Snapshot()
		tickets := byTrain[train.ID]
		ta := TrainAudit{TrainID: train.ID, ActiveTickets: len(tickets)}

		claimed := make(map[Seat]bool, len(tickets))
		for _, t := range tickets {
			r, c := t.Seat.Row, t.Seat.Col
			free := r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) || !grid[r][c]
			if free || claimed[t.Seat] {
				ta.DanglingTickets = append(ta.DanglingTickets, t.ID)
				continue
			}
			claimed[t.Seat] = true
		}
		for r, row := range grid {
			for c, occupied := range row {
				if !occupied {
					continue
				}
				ta.OccupiedSeats++
				if !claimed[Seat{Row: r, Col: c}] {
					ta.OrphanSeats = append(ta.OrphanSeats, Seat{Row: r, Col: c})
				}
			}
		}
		report.Trains = append(report.Trains, ta)
	}
	return report
}
