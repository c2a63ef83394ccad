package game

import (
	"os"
	"strconv"
	"time"

	"racer/internal/sim"
)

// Window defaults.
const (
	WindowWidth      = 1024
	WindowHeight     = 768
	FullscreenWidth  = 1920
	FullscreenHeight = 1080
	MaxFrameDelta    = 0.1 // seconds; longer stalls are clamped
)

// Chase camera.
const (
	CameraDistance = 5.0
	CameraHeight   = 2.0
	CameraFOV      = 60.0 // degrees, vertical
	CameraNear     = 0.1
	CameraFar      = 4000.0
)

// Landscape.
const (
	GroundHalfSize  = 500.0
	GroundLevel     = -0.1
	CentreLineLift  = 0.01
	GuardrailHeight = 0.5
	CheckerSamples  = 5 // samples either side of the line painted as a checkerboard
	MountainSides   = 12
	TreeSides       = 10
)

// Font atlas layout (ASCII 0-127 rasterised from basicfont.Face7x13).
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 32
	FontRows   = 4
	FontAtlasW = FontCellW * FontCols // 224
	FontAtlasH = FontCellH * FontRows // 52
)

// HUD text scales (screen pixels per atlas pixel).
const (
	HUDScale       = 2.0
	CountdownScale = 10.0
	BannerScale    = 5.0
)

// Environment overrides.
const (
	EnvSeed      = "RACER_SEED"
	EnvLaps      = "RACER_LAPS"
	EnvOpponents = "RACER_OPPONENTS"
)

// RaceConfigFromEnv starts from sim.DefaultConfig and applies any overrides
// found through getenv. The seed falls back to the clock. Unparsable values are
// ignored; out-of-range ones are left for sim.New to reject.
func RaceConfigFromEnv(getenv func(string) string, now time.Time) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = uint64(now.UnixNano())
	if s := getenv(EnvSeed); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			cfg.Seed = v
		}
	}
	if s := getenv(EnvLaps); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			cfg.TotalLaps = v
		}
	}
	if s := getenv(EnvOpponents); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			cfg.Opponents = v
		}
	}
	return cfg
}

func raceConfig() sim.Config {
	return RaceConfigFromEnv(os.Getenv, time.Now())
}
