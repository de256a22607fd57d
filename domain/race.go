package domain

import (
	"time"

	"github.com/samborkent/uuidv7"
)

type RaceStatus string

const (
	RaceUpcoming  RaceStatus = "Upcoming"
	RaceCompleted RaceStatus = "Completed"
)

// Race is one scheduled event of a league calendar. Date is always a UTC
// instant; normalization of stored encodings happens in the repos.
type Race struct {
	ID     string     `json:"_id"`
	Track  string     `json:"track"`
	Date   time.Time  `json:"date"`
	Status RaceStatus `json:"status"`
}

func NewRace(track string, date time.Time) Race {
	return Race{
		ID:     uuidv7.New().String(),
		Track:  track,
		Date:   date.UTC(),
		Status: RaceUpcoming,
	}
}

// Complete moves the race to Completed. There is no way back.
func (r *Race) Complete() {
	r.Status = RaceCompleted
}

func (r Race) IsUpcoming() bool {
	return r.Status == RaceUpcoming
}
