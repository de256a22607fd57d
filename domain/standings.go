package domain

import "strconv"

// PointSystem maps a finishing position ("1", "2", ...) to points.
type PointSystem map[string]int

// PointsFor returns the points for a position. Unmapped positions score 0.
func (p PointSystem) PointsFor(position int) int {
	return p[strconv.Itoa(position)]
}

// ResultInput is what a caller submits for one participant in one race.
type ResultInput struct {
	Position   int  `json:"position"`
	FastestLap bool `json:"fastest_lap"`
	DNF        bool `json:"dnf"`
}

// RaceEntry is the scored result of one participant in one race. Wins and
// podiums are fixed when the result is submitted.
type RaceEntry struct {
	Position   int  `json:"position"`
	Points     int  `json:"points"`
	FastestLap bool `json:"fastest_lap"`
	DNF        bool `json:"dnf"`
	Wins       int  `json:"wins"`
	Podiums    int  `json:"podiums"`
}

// Stats is the aggregate of a participant over every race.
type Stats struct {
	Name        string `json:"name,omitempty"`
	Points      int    `json:"points"`
	Wins        int    `json:"wins"`
	Podiums     int    `json:"podiums"`
	DNFs        int    `json:"dnfs"`
	FastestLaps int    `json:"fastestLaps"`
}

func (s *Stats) add(o Stats) {
	s.Points += o.Points
	s.Wins += o.Wins
	s.Podiums += o.Podiums
	s.DNFs += o.DNFs
	s.FastestLaps += o.FastestLaps
}

// RaceResults is the per-race ledger entry: participant email -> entry.
type RaceResults map[string]RaceEntry

// Standings holds the per-race ledger and the overall projection of it.
type Standings struct {
	Overall map[string]Stats       `json:"overall"`
	Races   map[string]RaceResults `json:"races"`
}

func NewStandings() Standings {
	return Standings{
		Overall: map[string]Stats{},
		Races:   map[string]RaceResults{},
	}
}

// Clone returns a deep copy.
func (s Standings) Clone() Standings {
	out := NewStandings()
	for email, stats := range s.Overall {
		out.Overall[email] = stats
	}
	for raceID, results := range s.Races {
		copied := make(RaceResults, len(results))
		for email, entry := range results {
			copied[email] = entry
		}
		out.Races[raceID] = copied
	}
	return out
}

// ScoreResult turns a submitted result into a ledger entry.
//
// A DNF zeroes the position points, but the fastest lap bonus is still added
// when the participant is flagged with the fastest lap.
func ScoreResult(in ResultInput, points PointSystem, fastestLapPoint int) RaceEntry {
	entry := RaceEntry{
		Position:   in.Position,
		FastestLap: in.FastestLap,
		DNF:        in.DNF,
	}
	if in.Position == 1 {
		entry.Wins = 1
	}
	if in.Position >= 1 && in.Position <= 3 {
		entry.Podiums = 1
	}

	if !in.DNF {
		entry.Points = points.PointsFor(in.Position)
	}
	if in.FastestLap && fastestLapPoint > 0 {
		entry.Points += fastestLapPoint
	}
	return entry
}

// ComputeOverall folds the race ledger into per-participant totals. Every
// current participant gets an entry, and so does anyone who only appears in
// historical race entries. Names are carried over from previous.
func ComputeOverall(participants []Participant, races map[string]RaceResults, previous map[string]Stats) map[string]Stats {
	overall := make(map[string]Stats, len(participants))

	for _, p := range participants {
		overall[p.Email] = Stats{Name: previous[p.Email].Name}
	}

	for _, results := range races {
		for email, entry := range results {
			stats, ok := overall[email]
			if !ok {
				stats = Stats{Name: previous[email].Name}
			}
			stats.add(entry.contribution())
			overall[email] = stats
		}
	}

	return overall
}

func (e RaceEntry) contribution() Stats {
	s := Stats{Points: e.Points}
	if e.Wins > 0 {
		s.Wins = 1
	}
	if e.Podiums > 0 {
		s.Podiums = 1
	}
	if e.DNF {
		s.DNFs = 1
	}
	if e.FastestLap {
		s.FastestLaps = 1
	}
	return s
}

// ParticipantStandings is the view of the standings for one participant.
type ParticipantStandings struct {
	Overall Stats                `json:"overall"`
	Races   map[string]RaceEntry `json:"races"`
}
