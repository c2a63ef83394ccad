package sim

import (
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetLogger(nil)
	os.Exit(m.Run())
}

func newRace(t *testing.T, mutate func(*Config)) *Race {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

// startRace resets r at time 0 and advances straight to the green light.
func startRace(t *testing.T, r *Race) float64 {
	t.Helper()
	r.Reset(0)
	now := float64(r.Config().CountdownFrom) * r.Config().CountdownInterval
	s := r.Advance(now, frame, Input{})
	require.Equal(t, StateRacing, s.State)
	return now
}

// autopilot pins the player to top speed and aims it at the next centerline
// sample, which keeps it on the road at every point of the oval.
func autopilot(r *Race) Input {
	p := r.Player()
	p.Gear = p.MaxGear
	p.Speed = p.MaxSpeed
	p.Yaw = bearing(p.Pos, r.Track().Sample(p.Nearest+1))
	return Input{Throttle: true}
}

func record(r *Race, types ...EventType) *[]Event {
	var got []Event
	for _, et := range types {
		r.Events().Subscribe(et, func(e Event) { got = append(got, e) })
	}
	return &got
}

func TestNewLeavesRaceIdle(t *testing.T) {
	r := newRace(t, nil)
	assert.Equal(t, StateNotStarted, r.State())
	assert.Len(t, r.Opponents(), DefaultOpponents)
	assert.Len(t, r.Scenery(), SceneryTrees)

	pos := r.Player().Pos
	s := r.Advance(5, frame, Input{Throttle: true, ShiftUp: true})
	assert.Equal(t, StateNotStarted, s.State)
	assert.Equal(t, pos, r.Player().Pos)
	assert.Zero(t, s.Gear)
	assert.Zero(t, s.RaceTime)
}

func TestGrid(t *testing.T) {
	r := newRace(t, nil)
	tr := r.Track()
	fwd, _ := tr.Tangent(0)
	start := tr.Sample(0)

	p := r.Player()
	assert.Greater(t, planar(p.Pos.Sub(start)).Dot(fwd), 0.0, "player starts past the line")
	assert.Equal(t, RideHeight, p.Pos[1])
	assert.InDelta(t, bearing(mgl64.Vec3{}, fwd), p.Yaw, 1e-9)

	for i, a := range r.Opponents() {
		assert.Equal(t, VehicleID(i+1), a.ID)
		assert.Less(t, planar(a.Pos.Sub(start)).Dot(fwd), 0.0, "opponent %d starts behind the line", a.ID)
		assert.Equal(t, AIColors[i], a.Color)
	}
	s := r.Snapshot(0)
	assert.Equal(t, 1, s.Position)
	assert.Equal(t, DefaultOpponents+1, s.Field)
}

func TestCountdownSteps(t *testing.T) {
	r := newRace(t, nil)
	got := record(r, EventCountdown, EventGo)
	r.Reset(10)

	steps := []struct {
		now       float64
		state     RaceState
		countdown int
	}{
		{10.5, StateCountdown, 3},
		{11.0, StateCountdown, 2},
		{11.0, StateCountdown, 2},
		{11.7, StateCountdown, 2},
		{12.0, StateCountdown, 1},
		{12.99, StateCountdown, 1},
		{13.0, StateRacing, 0},
	}
	for _, st := range steps {
		s := r.Advance(st.now, frame, Input{Throttle: true})
		require.Equal(t, st.state, s.State, "at %.2f", st.now)
		assert.Equal(t, st.countdown, s.Countdown, "at %.2f", st.now)
	}

	var values []int
	goes := 0
	for _, e := range *got {
		switch e.Type {
		case EventCountdown:
			values = append(values, e.Value)
		case EventGo:
			goes++
			assert.Equal(t, 13.0, e.Time)
		}
	}
	assert.Equal(t, []int{3, 2, 1}, values)
	assert.Equal(t, 1, goes)
	assert.Zero(t, r.Snapshot(13).RaceTime)
}

func TestCountdownCatchesUpAfterStall(t *testing.T) {
	r := newRace(t, nil)
	got := record(r, EventCountdown, EventGo)
	r.Reset(0)

	s := r.Advance(5, frame, Input{})
	require.Equal(t, StateRacing, s.State)
	assert.InDelta(t, 2.0, s.RaceTime, 1e-12, "race clock starts at the interval boundary")

	types := make([]EventType, 0, len(*got))
	for _, e := range *got {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{EventCountdown, EventCountdown, EventCountdown, EventGo}, types)
}

func TestCountdownAtFrameRate(t *testing.T) {
	r := newRace(t, nil)
	got := record(r, EventCountdown, EventGo)
	r.Reset(0)

	now := 0.0
	for r.State() == StateCountdown {
		now += frame
		r.Advance(now, frame, Input{})
		require.Less(t, now, 4.0)
	}
	assert.Len(t, *got, 4)
	assert.InDelta(t, 3.0, now, frame+1e-9)
}

func TestPlayerFrozenDuringCountdown(t *testing.T) {
	r := newRace(t, nil)
	r.Reset(0)
	pos := r.Player().Pos
	for now := 0.1; now < 2.9; now += 0.1 {
		r.Advance(now, 0.1, Input{Throttle: true, ShiftUp: true, SteerLeft: true})
	}
	assert.Equal(t, pos, r.Player().Pos)
	assert.Zero(t, r.Player().Gear)
}

func TestThreeLapRace(t *testing.T) {
	r := newRace(t, func(c *Config) { c.Opponents = 0 })
	laps := record(r, EventLapCompleted)
	best := record(r, EventBestLap)
	finished := record(r, EventRaceFinished)
	now := startRace(t, r)

	for i := 0; i < 5000 && r.State() == StateRacing; i++ {
		now += frame
		r.Advance(now, frame, autopilot(r))
	}
	s := r.Snapshot(now)
	require.Equal(t, StateFinished, s.State)

	assert.Equal(t, 3, s.Laps)
	require.Len(t, s.LapTimes, 3)
	sum, fastest := 0.0, s.LapTimes[0]
	for _, lt := range s.LapTimes {
		assert.InDelta(t, 10.0, lt, 1.5)
		sum += lt
		if lt < fastest {
			fastest = lt
		}
	}
	assert.True(t, s.HasBestLap)
	assert.Equal(t, fastest, s.BestLap)
	assert.InDelta(t, sum, s.TotalTime, 1e-9)
	assert.Equal(t, s.TotalTime, s.RaceTime)
	assert.Equal(t, 1, s.Position)

	require.Len(t, *laps, 3)
	for i, e := range *laps {
		assert.Equal(t, i+1, e.Value)
		assert.Equal(t, PlayerID, e.Vehicle)
	}
	require.NotEmpty(t, *best)
	assert.Equal(t, s.BestLap, (*best)[len(*best)-1].Time)
	require.Len(t, *finished, 1)
	assert.Equal(t, 1, (*finished)[0].Value)
}

func TestFinishedRaceIsFrozen(t *testing.T) {
	r := newRace(t, func(c *Config) {
		c.Opponents = 2
		c.TotalLaps = 1
	})
	now := startRace(t, r)
	for i := 0; i < 3000 && r.State() == StateRacing; i++ {
		now += frame
		r.Advance(now, frame, autopilot(r))
	}
	require.Equal(t, StateFinished, r.State())

	before := r.Snapshot(now)
	for i := 0; i < 120; i++ {
		now += frame
		r.Advance(now, frame, Input{Throttle: true, SteerLeft: true})
	}
	after := r.Snapshot(now)
	assert.Empty(t, cmp.Diff(before, after))
}

func TestResetAfterFinishMatchesFreshRace(t *testing.T) {
	mutate := func(c *Config) {
		c.Seed = 77
		c.TotalLaps = 1
	}
	r := newRace(t, mutate)
	now := startRace(t, r)
	for i := 0; i < 3000 && r.State() == StateRacing; i++ {
		now += frame
		r.Advance(now, frame, autopilot(r))
	}
	require.Equal(t, StateFinished, r.State())

	got := record(r, EventReset, EventCountdown)
	r.Reset(0)

	fresh := newRace(t, mutate)
	fresh.Reset(0)

	if diff := cmp.Diff(fresh.Snapshot(0), r.Snapshot(0)); diff != "" {
		t.Errorf("restarted race differs from a fresh one (-fresh +restarted):\n%s", diff)
	}
	for id := range r.cars {
		assert.Zero(t, r.progress.ledger.Get(VehicleID(id)))
	}
	require.Len(t, *got, 2)
	assert.Equal(t, EventReset, (*got)[0].Type)
	assert.Equal(t, EventCountdown, (*got)[1].Type)
	assert.Equal(t, CountdownFrom, (*got)[1].Value)
}

func TestSameSeedSameRace(t *testing.T) {
	run := func() Snapshot {
		r := newRace(t, func(c *Config) { c.Seed = 1234 })
		now := startRace(t, r)
		var s Snapshot
		for i := 0; i < 600; i++ {
			now += frame
			s = r.Advance(now, frame, Input{Throttle: true, ShiftUp: i%40 == 0, SteerLeft: i%7 == 0})
		}
		return s
	}
	assert.Empty(t, cmp.Diff(run(), run()))
}

func TestOffTrackSlowsPlayer(t *testing.T) {
	r := newRace(t, func(c *Config) { c.Opponents = 0 })
	got := record(r, EventOffTrack)
	now := startRace(t, r)

	p := r.Player()
	p.Pos = mgl64.Vec3{0, RideHeight, 0}
	p.Gear = 5
	p.Speed = 0.5
	now += frame
	s := r.Advance(now, frame, Input{})
	assert.True(t, s.OffTrack)
	assert.InDelta(t, (0.5+PlayerEngineBraking)*OffTrackDamping, p.Speed, 1e-12)

	now += frame
	r.Advance(now, frame, Input{})
	assert.Len(t, *got, 1, "one event per excursion")
}

func TestContactWithOpponent(t *testing.T) {
	r := newRace(t, func(c *Config) { c.Opponents = 1 })
	got := record(r, EventCollision)
	now := startRace(t, r)

	p := r.Player()
	a := r.Opponents()[0]
	a.Pos = p.Pos.Add(mgl64.Vec3{0.5, 0, 0})
	a.Speed = 0

	now += frame
	r.Advance(now, frame, Input{})

	require.Len(t, *got, 1)
	assert.Equal(t, a.ID, (*got)[0].Vehicle)
	assert.InDelta(t, AISpeedUp*CollisionDamping, a.Speed, 1e-12)
	assert.InDelta(t, 0.5+CollisionPush, planarDist(p.Pos, a.Pos), 1e-9)
}

func TestGearShiftEvent(t *testing.T) {
	r := newRace(t, func(c *Config) { c.Opponents = 0 })
	got := record(r, EventGearShift)
	now := startRace(t, r)

	for i := 0; i < 5; i++ {
		now += frame
		r.Advance(now, frame, Input{ShiftUp: true})
	}
	require.Len(t, *got, 1)
	assert.Equal(t, 1, (*got)[0].Value)
	assert.Equal(t, 1, r.Snapshot(now).Gear)
}

func TestSnapshotIsACopy(t *testing.T) {
	r := newRace(t, nil)
	now := startRace(t, r)
	s := r.Advance(now+frame, frame, Input{})
	s.Standings[0] = 99
	s.Vehicles[0].Pos = mgl64.Vec3{1e6, 0, 0}
	fresh := r.Snapshot(now + frame)
	assert.NotEqual(t, VehicleID(99), fresh.Standings[0])
	assert.NotEqual(t, s.Vehicles[0].Pos, fresh.Vehicles[0].Pos)
}

func TestRaceStateString(t *testing.T) {
	assert.Equal(t, "countdown", StateCountdown.String())
	assert.Equal(t, "unknown", RaceState(42).String())
}
