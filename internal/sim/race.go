// Package sim is the frame-driven core of the racing game: the track, the
// player and AI cars, collisions and the race state machine. It has no
// rendering, audio or input code and never reads the clock itself; the driver
// passes the current time and the frame delta into every call.
package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type RaceState int

const (
	StateNotStarted RaceState = iota
	StateCountdown
	StateRacing
	StateFinished
)

func (s RaceState) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateCountdown:
		return "countdown"
	case StateRacing:
		return "racing"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// PlayerGridLead places the player just past the start line.
const PlayerGridLead = 2.0

// SceneryTrees is the number of trees scattered along the road.
const SceneryTrees = 200

type Race struct {
	cfg      Config
	track    *Track
	events   *EventBus
	rng      *Rand
	progress *progressTracker
	scenery  []Tree

	player *Player
	ai     []*AIDriver
	cars   []*Car // indexed by VehicleID

	state          RaceState
	countdown      int
	countdownStart float64
	countdownFired int

	startTime float64
	lapStart  float64
	lapTimes  []float64
	bestLap   float64
	hasBest   bool
	totalTime float64

	standings []VehicleID
	position  int
	offTrack  bool
}

// New validates cfg, builds the track and grid and leaves the race in
// StateNotStarted. Call Reset to begin the countdown.
func New(cfg Config) (*Race, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := NewOvalTrack(cfg.TrackSamples, cfg.TrackRadiusX, cfg.TrackRadiusZ, cfg.TrackElevation, cfg.TrackWidth)
	if err != nil {
		return nil, err
	}
	r := &Race{
		cfg:    cfg,
		track:  t,
		events: NewEventBus(),
	}
	r.progress = &progressTracker{
		track:  t,
		gate:   newGate(cfg.Gate, t),
		ledger: NewLedger(cfg.Opponents+1, cfg.stride()),
	}
	r.scenery = t.Scenery(NewRand(cfg.Seed^0x7EE5EED), SceneryTrees)
	r.setup()
	return r, nil
}

func (r *Race) Track() *Track { return r.track }

func (r *Race) Events() *EventBus { return r.events }

func (r *Race) Config() Config { return r.cfg }

func (r *Race) State() RaceState { return r.state }

// Scenery is generated once per race from the seed and is only decoration.
func (r *Race) Scenery() []Tree { return r.scenery }

func (r *Race) Player() *Player { return r.player }

func (r *Race) Opponents() []*AIDriver { return r.ai }

// setup puts every car on the grid and clears all race bookkeeping.
func (r *Race) setup() {
	r.rng = NewRand(r.cfg.Seed)
	t := r.track

	start := t.Sample(0)
	fwd, ok := t.Tangent(0)
	if !ok {
		fwd = mgl64.Vec3{0, 0, 1}
	}
	side := mgl64.Vec3{-fwd[2], 0, fwd[0]}
	yaw := bearing(mgl64.Vec3{}, fwd)

	pos := start.Add(fwd.Mul(PlayerGridLead))
	pos[1] = RideHeight
	r.player = NewPlayer(pos, yaw)

	r.ai = r.ai[:0]
	r.cars = append(r.cars[:0], &r.player.Car)
	for i := 0; i < r.cfg.Opponents; i++ {
		back := AIGridStart + float64(i)*AIGridGap
		p := start.Sub(fwd.Mul(back)).Add(side.Mul(r.rng.RangeF(-AIGridJitter, AIGridJitter)))
		p[1] = start[1] + RideHeight
		a := NewAIDriver(VehicleID(i+1), p, yaw, r.rng, AIColors[i])
		r.ai = append(r.ai, a)
		r.cars = append(r.cars, &a.Car)
	}
	for _, c := range r.cars {
		c.Nearest, _, _ = t.NearestIndex(c.Pos)
	}

	r.progress.ledger.Reset()
	r.state = StateNotStarted
	r.countdown = 0
	r.countdownStart = 0
	r.countdownFired = 0
	r.startTime = 0
	r.lapStart = 0
	r.lapTimes = nil
	r.bestLap = 0
	r.hasBest = false
	r.totalTime = 0
	r.offTrack = false
	r.rank()
}

// Reset restores race-start conditions and starts a fresh countdown at now.
// It is accepted in every state and is the only way to abandon a race.
func (r *Race) Reset(now float64) {
	r.setup()
	r.events.Emit(Event{Type: EventReset})
	r.startCountdown(now)
}

func (r *Race) startCountdown(now float64) {
	r.state = StateCountdown
	r.countdown = r.cfg.CountdownFrom
	r.countdownStart = now
	r.countdownFired = 0
	Logf("race: countdown from %d, %d laps, %d opponents", r.countdown, r.cfg.TotalLaps, len(r.ai))
	r.events.Emit(Event{Type: EventCountdown, Value: r.countdown})
}

// Advance runs one frame. now is the driver's monotonic time in seconds and
// dt the time since the previous frame.
func (r *Race) Advance(now, dt float64, in Input) Snapshot {
	switch r.state {
	case StateCountdown:
		r.tickCountdown(now)
	case StateRacing:
		r.step(now, dt, in)
	}
	return r.Snapshot(now)
}

// tickCountdown applies one decrement for every whole interval elapsed since
// the countdown began and not yet applied, so slow or fast frames never skip
// or repeat a step.
func (r *Race) tickCountdown(now float64) {
	due := int(math.Floor((now - r.countdownStart) / r.cfg.CountdownInterval))
	for r.state == StateCountdown && r.countdownFired < due {
		r.countdownFired++
		if r.countdown > 0 {
			r.countdown--
		}
		if r.countdown > 0 {
			r.events.Emit(Event{Type: EventCountdown, Value: r.countdown})
			continue
		}
		at := r.countdownStart + float64(r.countdownFired)*r.cfg.CountdownInterval
		r.state = StateRacing
		r.startTime = at
		r.lapStart = at
		Logf("race: go at %.3fs", at)
		r.events.Emit(Event{Type: EventGo, Time: at})
	}
}

func (r *Race) step(now, dt float64, in Input) {
	t := r.track
	p := r.player

	prev := p.Pos
	if p.Drive(in) {
		r.events.Emit(Event{Type: EventGearShift, Vehicle: p.ID, Value: p.Gear})
	}

	for _, a := range r.ai {
		from := a.Pos
		nearest := a.Update(t, dt, r.rng)
		if r.progress.observe(&a.Car, from, nearest) {
			r.events.Emit(Event{Type: EventLapCompleted, Vehicle: a.ID, Value: a.Laps})
		}
	}

	for _, a := range r.ai {
		if Collide(&p.Car, &a.Car) {
			mid := p.Pos.Add(a.Pos).Mul(0.5)
			r.events.Emit(Event{Type: EventCollision, Vehicle: a.ID, X: mid[0], Z: mid[2]})
		}
	}

	nearest, _, _ := t.NearestIndex(p.Pos)
	off := t.OffTrack(p.Pos, nearest)
	if off {
		p.Speed *= OffTrackDamping
		if !r.offTrack {
			r.events.Emit(Event{Type: EventOffTrack, Vehicle: p.ID, X: p.Pos[0], Z: p.Pos[2]})
		}
	}
	r.offTrack = off

	if r.progress.observe(&p.Car, prev, nearest) {
		r.completeLap(now)
	}

	r.rank()
}

// rank recomputes the standings and the player's place in them.
func (r *Race) rank() {
	r.standings = r.progress.standings(r.cars)
	for i, id := range r.standings {
		if id == PlayerID {
			r.position = i + 1
			return
		}
	}
}

func (r *Race) completeLap(now float64) {
	lapTime := now - r.lapStart
	r.lapTimes = append(r.lapTimes, lapTime)
	lap := r.player.Laps
	Logf("race: lap %d/%d in %.3fs", lap, r.cfg.TotalLaps, lapTime)
	r.events.Emit(Event{Type: EventLapCompleted, Vehicle: PlayerID, Value: lap, Time: lapTime})
	if !r.hasBest || lapTime < r.bestLap {
		r.bestLap = lapTime
		r.hasBest = true
		r.events.Emit(Event{Type: EventBestLap, Vehicle: PlayerID, Value: lap, Time: lapTime})
	}
	r.lapStart = now

	if lap >= r.cfg.TotalLaps {
		r.state = StateFinished
		r.totalTime = now - r.startTime
		Logf("race: finished in %.3fs", r.totalTime)
		r.rank()
		r.events.Emit(Event{Type: EventRaceFinished, Vehicle: PlayerID, Value: r.position, Time: r.totalTime})
	}
}
