package sim

import (
	"errors"
	"fmt"
	"math"
)

// Track generation defaults (world units).
const (
	TrackSamples   = 100
	TrackRadiusX   = 50.0
	TrackRadiusZ   = 100.0
	TrackElevation = 2.0
	TrackWidth     = 10.0
)

// Player car.
const (
	PlayerMaxSpeed      = 0.8
	PlayerMaxReverse    = 0.3
	PlayerSteeringRate  = 2.0 // degrees per tick at standstill
	PlayerMaxGear       = 5
	PlayerGearAccel     = 0.01 // per gear, per tick
	PlayerReverseAccel  = -0.02
	PlayerEngineBraking = -0.005
	PlayerBrakeDamping  = 0.95
	PlayerShiftSpeed    = 0.1 // upshift needs speed >= gear*PlayerShiftSpeed
	RideHeight          = 0.5
)

// AI driver.
const (
	AISteerGain      = 2.0
	AISharpTurn      = 30.0 // degrees
	AICurveBrake     = 0.001
	AIMinTarget      = 0.2
	AITargetRecover  = 0.01
	AITargetLo       = 0.3
	AITargetHi       = 0.7
	AIStartSpeedLo   = 0.2
	AIStartSpeedHi   = 0.6
	AISpeedUp        = 0.01
	AISpeedDown      = 0.02
	AIGridGap        = 2.0
	AIGridStart      = 5.0
	AIGridJitter     = 3.0
	MaxOpponents     = 7
	DefaultOpponents = 7
)

// Collisions and penalties.
const (
	CollisionRadius  = 1.0
	CollisionDamping = 0.5
	CollisionPush    = 0.4 // total separation added per contact, split between both cars
	OffTrackDamping  = 0.95
)

// Race flow.
const (
	DefaultTotalLaps  = 3
	CountdownFrom     = 3
	CountdownInterval = 1.0 // seconds
)

// Heuristic finish line (only meaningful for the generated oval).
const (
	HeuristicGateWindow = 5
	HeuristicGateBand   = 5.0
)

// GateKind selects how lap crossings are detected.
type GateKind int

const (
	GateSegment GateKind = iota
	GateHeuristic
)

// ErrInvalidConfig is returned by New for configurations the simulation cannot run.
var ErrInvalidConfig = errors.New("invalid race config")

// Config collects every tunable of a race. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Seed uint64

	TrackSamples   int
	TrackRadiusX   float64
	TrackRadiusZ   float64
	TrackElevation float64
	TrackWidth     float64

	TotalLaps         int
	Opponents         int
	CountdownFrom     int
	CountdownInterval float64

	// CheckpointStride is the largest forward jump in nearest index the
	// checkpoint ledger accepts in one update. Zero means TrackSamples/4.
	CheckpointStride int

	Gate GateKind
}

func DefaultConfig() Config {
	return Config{
		Seed:              1,
		TrackSamples:      TrackSamples,
		TrackRadiusX:      TrackRadiusX,
		TrackRadiusZ:      TrackRadiusZ,
		TrackElevation:    TrackElevation,
		TrackWidth:        TrackWidth,
		TotalLaps:         DefaultTotalLaps,
		Opponents:         DefaultOpponents,
		CountdownFrom:     CountdownFrom,
		CountdownInterval: CountdownInterval,
		Gate:              GateSegment,
	}
}

// Validate rejects configurations that would fail later with a division by
// zero or an empty track.
func (c Config) Validate() error {
	switch {
	case c.TrackSamples < minTrackSamples:
		return fmt.Errorf("%w: track needs at least %d samples, got %d", ErrInvalidConfig, minTrackSamples, c.TrackSamples)
	case !finite(c.TrackRadiusX, c.TrackRadiusZ, c.TrackElevation, c.TrackWidth, c.CountdownInterval):
		return fmt.Errorf("%w: track dimensions and countdown interval must be finite", ErrInvalidConfig)
	case c.TrackRadiusX <= 0 || c.TrackRadiusZ <= 0:
		return fmt.Errorf("%w: track radii must be positive, got %.2f x %.2f", ErrInvalidConfig, c.TrackRadiusX, c.TrackRadiusZ)
	case c.TrackWidth <= 0:
		return fmt.Errorf("%w: track width must be positive, got %.2f", ErrInvalidConfig, c.TrackWidth)
	case c.TotalLaps <= 0:
		return fmt.Errorf("%w: total laps must be positive, got %d", ErrInvalidConfig, c.TotalLaps)
	case c.Opponents < 0 || c.Opponents > MaxOpponents:
		return fmt.Errorf("%w: opponents must be in 0..%d, got %d", ErrInvalidConfig, MaxOpponents, c.Opponents)
	case c.CountdownFrom < 0:
		return fmt.Errorf("%w: countdown must not be negative, got %d", ErrInvalidConfig, c.CountdownFrom)
	case c.CountdownInterval <= 0:
		return fmt.Errorf("%w: countdown interval must be positive, got %.3f", ErrInvalidConfig, c.CountdownInterval)
	case c.CheckpointStride < 0:
		return fmt.Errorf("%w: checkpoint stride must not be negative, got %d", ErrInvalidConfig, c.CheckpointStride)
	case c.Gate != GateSegment && c.Gate != GateHeuristic:
		return fmt.Errorf("%w: unknown gate kind %d", ErrInvalidConfig, c.Gate)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c Config) stride() int {
	if c.CheckpointStride > 0 {
		return c.CheckpointStride
	}
	s := c.TrackSamples / 4
	if s < 1 {
		s = 1
	}
	return s
}
