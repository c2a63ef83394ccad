package game

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"racer/internal/sim"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundCountdown SoundKind = iota
	SoundGo
	SoundLap
	SoundBestLap
	SoundCollision
	SoundGearShift
	SoundOffTrack
	SoundFinish
)

// AudioSystem manages procedural sound effects and the engine drone.
type AudioSystem struct {
	ctx          *oto.Context
	ready        chan struct{}
	engine       *engineReader
	enginePlayer oto.Player
}

var globalAudio *AudioSystem

// activeCollisions limits simultaneous crash sounds when a pack of cars piles up.
var activeCollisions int32

var sfxVolume float64 = 0.58
var engineVolume float64 = 0.12

// InitAudio initializes the audio system.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return fmt.Errorf("oto context: %w", err)
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready, engine: &engineReader{}}
	return nil
}

// BindAudio plays the race's sound effects from its event stream.
func BindAudio(bus *sim.EventBus) {
	bus.Subscribe(sim.EventCountdown, func(sim.Event) { PlaySound(SoundCountdown) })
	bus.Subscribe(sim.EventGo, func(sim.Event) { PlaySound(SoundGo) })
	bus.Subscribe(sim.EventGearShift, func(sim.Event) { PlaySound(SoundGearShift) })
	bus.Subscribe(sim.EventOffTrack, func(sim.Event) { PlaySound(SoundOffTrack) })
	bus.Subscribe(sim.EventRaceFinished, func(sim.Event) { PlaySound(SoundFinish) })
	bus.Subscribe(sim.EventCollision, func(sim.Event) { PlaySound(SoundCollision) })
	bus.Subscribe(sim.EventLapCompleted, func(e sim.Event) {
		if e.Vehicle == sim.PlayerID {
			PlaySound(SoundLap)
		}
	})
	bus.Subscribe(sim.EventBestLap, func(e sim.Event) {
		// The first lap is always a best lap; only chime on improvements.
		if e.Value > 1 {
			PlaySoundWithGain(SoundBestLap, 0.8)
		}
	})
}

// PlaySound plays a procedurally generated sound effect.
func PlaySound(kind SoundKind) {
	playSoundWithGain(kind, 1.0)
}

func PlaySoundWithGain(kind SoundKind, gain float64) {
	playSoundWithGain(kind, gain)
}

func audioReady() bool {
	if globalAudio == nil {
		return false
	}
	select {
	case <-globalAudio.ready:
		return true
	default:
		return false
	}
}

func playSoundWithGain(kind SoundKind, gain float64) {
	if gain <= 0 || !audioReady() {
		return
	}
	if kind == SoundCollision {
		if atomic.LoadInt32(&activeCollisions) >= 2 {
			return
		}
		atomic.AddInt32(&activeCollisions, 1)
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		if kind == SoundCollision {
			atomic.AddInt32(&activeCollisions, -1)
		}
		return
	}
	go func() {
		if kind == SoundCollision {
			defer atomic.AddInt32(&activeCollisions, -1)
		}
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundCountdown:
		return genBeep(440, 0.18)
	case SoundGo:
		return genBeep(880, 0.45)
	case SoundLap:
		return genChime([]float64{659.25, 987.77}) // E5 B5
	case SoundBestLap:
		return genChime([]float64{523.25, 659.25, 783.99, 1046.5}) // C5 E5 G5 C6
	case SoundCollision:
		return genCollision()
	case SoundGearShift:
		return genGearShift()
	case SoundOffTrack:
		return genOffTrack()
	case SoundFinish:
		return genFinish()
	}
	return nil
}

// genBeep: start-light tone with a hard attack and short ring.
func genBeep(freq, dur float64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.2, 0.7, 0.3)
		s := math.Sin(2*math.Pi*freq*t)*env*0.45 + math.Sin(2*math.Pi*freq*2*t)*env*0.08
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genChime: FM bell arpeggio, each note ringing over the next.
func genChime(freqs []float64) []byte {
	noteLen := SampleRate * 90 / 1000
	tail := int(0.25 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.34
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCollision: metallic crunch over a low body thump.
func genCollision() []byte {
	n := int(0.28 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(42424)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		raw := lcg(&seed)
		lp = lp*0.7 + raw*0.3
		thump := fm(t, 70, 0.5, 1.5) * math.Exp(-p*14)
		clang := fm(t, 620, 1.41, 3.0) * math.Exp(-p*22) * 0.25
		s := (lp*0.5*math.Exp(-p*9) + thump*0.6 + clang) * 0.9
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGearShift: short mechanical clunk.
func genGearShift() []byte {
	n := SampleRate * 60 / 1000
	buf := makeBuf(n)
	seed := uint64(777)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.4, 0.0, 0.1)
		s := (fm(t, 180, 1.0, 0.8)*0.4 + lcg(&seed)*0.15) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genOffTrack: gravel rumble.
func genOffTrack() []byte {
	n := int(0.35 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(9191)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		lp = lp*0.9 + lcg(&seed)*0.1
		mod := 0.6 + 0.4*math.Sin(2*math.Pi*23*t)
		s := lp * mod * (1 - p) * 1.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genFinish: rising major fanfare.
func genFinish() []byte {
	dur := 1.1
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{392.00, 0.00}, // G4
		{523.25, 0.15}, // C5
		{659.25, 0.30}, // E5
		{783.99, 0.45}, // G5
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.01, 0.3, 0.4, 0.4)
			s := fm(t, note.freq, 1.0, 1.6*env) * env * 0.22
			s += math.Sin(2*math.Pi*note.freq*0.5*t) * env * 0.06
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Engine drone ---------------------------------------------------------

const (
	EngineIdleHz = 55.0
	EngineTopHz  = 220.0
	EngineSlew   = 0.0005 // per sample, fraction of the range
)

// engineReader is an endless FM drone. The target pitch is written from the
// render loop and read on oto's goroutine, so it travels as atomic bits.
type engineReader struct {
	target uint64 // math.Float64bits of 0..1
	level  float64
	phase  float64
	seed   uint64
}

func (e *engineReader) SetLevel(v float64) {
	atomic.StoreUint64(&e.target, math.Float64bits(clampF(v, 0, 1)))
}

func (e *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	target := math.Float64frombits(atomic.LoadUint64(&e.target))
	for i := 0; i < samples; i++ {
		switch {
		case e.level < target:
			e.level = math.Min(target, e.level+EngineSlew)
		case e.level > target:
			e.level = math.Max(target, e.level-EngineSlew)
		}
		freq := EngineIdleHz + (EngineTopHz-EngineIdleHz)*e.level
		e.phase += freq / SampleRate
		if e.phase >= 1 {
			e.phase -= 1
		}
		saw := 2*e.phase - 1
		body := math.Sin(2*math.Pi*e.phase + 1.8*math.Sin(4*math.Pi*e.phase))
		s := (saw*0.35 + body*0.5 + lcg(&e.seed)*0.04) * (0.55 + 0.45*e.level)
		putStereoF32(p, i, softSat(s*0.8))
	}
	return samples * 8, nil
}

// StartEngine starts the looping engine drone. It is a no-op without audio.
func StartEngine() {
	if !audioReady() {
		return
	}
	if globalAudio.enginePlayer != nil {
		globalAudio.enginePlayer.Close()
	}
	player := globalAudio.ctx.NewPlayer(globalAudio.engine)
	player.SetVolume(engineVolume)
	globalAudio.enginePlayer = player
	player.Play()
}

// SetEngine sets the drone pitch from the player's speed fraction.
func SetEngine(speedFraction float64) {
	if globalAudio == nil {
		return
	}
	globalAudio.engine.SetLevel(speedFraction)
}
