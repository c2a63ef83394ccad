package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VehicleSnapshot is the drawable state of one car.
type VehicleSnapshot struct {
	ID    VehicleID
	Kind  Kind
	Pos   mgl64.Vec3
	Yaw   float64
	Speed float64
	Laps  int
	Color RGB
}

// Snapshot is a read-only copy of everything the HUD and renderer need after
// a frame. It shares no memory with the race.
type Snapshot struct {
	State     RaceState
	Countdown int

	Vehicles []VehicleSnapshot // player first

	Gear          int
	SpeedFraction float64 // |speed| / max speed of the player

	Laps      int
	TotalLaps int
	Position  int
	Field     int
	Standings []VehicleID

	RaceTime   float64
	LapTimes   []float64
	BestLap    float64
	HasBestLap bool
	TotalTime  float64
	OffTrack   bool
}

func (r *Race) Snapshot(now float64) Snapshot {
	p := r.player
	s := Snapshot{
		State:      r.state,
		Countdown:  r.countdown,
		Vehicles:   make([]VehicleSnapshot, 0, len(r.cars)),
		Gear:       p.Gear,
		Laps:       p.Laps,
		TotalLaps:  r.cfg.TotalLaps,
		Position:   r.position,
		Field:      len(r.cars),
		Standings:  append([]VehicleID(nil), r.standings...),
		LapTimes:   append([]float64(nil), r.lapTimes...),
		BestLap:    r.bestLap,
		HasBestLap: r.hasBest,
		TotalTime:  r.totalTime,
		OffTrack:   r.offTrack,
	}
	if p.MaxSpeed > 0 {
		s.SpeedFraction = math.Abs(p.Speed) / p.MaxSpeed
	}
	switch r.state {
	case StateRacing:
		s.RaceTime = now - r.startTime
	case StateFinished:
		s.RaceTime = r.totalTime
	}
	for _, c := range r.cars {
		s.Vehicles = append(s.Vehicles, VehicleSnapshot{
			ID:    c.ID,
			Kind:  c.Kind,
			Pos:   c.Pos,
			Yaw:   c.Yaw,
			Speed: c.Speed,
			Laps:  c.Laps,
			Color: c.Color,
		})
	}
	return s
}
