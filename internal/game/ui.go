package game

import (
	"fmt"
	"math"

	"racer/internal/sim"
)

// HUDLine is one string placed in screen pixels, top-left origin.
type HUDLine struct {
	Text  string
	X, Y  int
	Scale float32
	Color RGB
}

// FormatTime renders seconds as MM:SS.mmm, rounded to the millisecond.
func FormatTime(sec float64) string {
	ms := int(math.Round(sec * 1000))
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// Ordinal returns n with its English suffix: 1st, 2nd, 3rd, 4th, 11th, 22nd.
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 10 || m > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// GearLabel shows N for neutral.
func GearLabel(gear int) string {
	if gear == 0 {
		return "N"
	}
	return fmt.Sprintf("%d", gear)
}

// SpeedMPH is the speedometer reading for a fraction of top speed, so a car
// at full speed reads 100.
func SpeedMPH(fraction float64) int {
	return int(math.Abs(fraction) * 100)
}

// VehicleName labels a car in the standings list.
func VehicleName(id sim.VehicleID) string {
	if id == sim.PlayerID {
		return "YOU"
	}
	return fmt.Sprintf("CPU %d", int(id))
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			if lineLen > maxLineLen {
				maxLineLen = lineLen
			}
			lineLen = 0
			continue
		}
		lineLen++
	}
	if lineLen > maxLineLen {
		maxLineLen = lineLen
	}
	return int(float32(maxLineLen*FontCellW) * scale)
}

func lineHeight(scale float32) int {
	return int(float32(FontCellH)*scale) + 6
}

func centred(text string, fbW, y int, scale float32, col RGB) HUDLine {
	return HUDLine{Text: text, X: fbW/2 - TextWidth(text, scale)/2, Y: y, Scale: scale, Color: col}
}

// HUDLayout builds every HUD string for a frame. goFor is how long GO! stays
// on screen after the start.
func HUDLayout(s sim.Snapshot, goFor float64, fbW, fbH int) []HUDLine {
	var out []HUDLine
	white := Palette.Text

	if s.State == sim.StateNotStarted {
		out = append(out, centred("RACING", fbW, fbH/2-80, BannerScale, Palette.Countdown))
		out = append(out, centred("Press ENTER to start", fbW, fbH/2+20, HUDScale, white))
		return out
	}

	// Left column.
	x, y := 10, 10
	lap := s.Laps + 1
	if lap > s.TotalLaps {
		lap = s.TotalLaps
	}
	for _, t := range []string{
		"TIME: " + FormatTime(s.RaceTime),
		fmt.Sprintf("LAP: %d/%d", lap, s.TotalLaps),
		fmt.Sprintf("POSITION: %d/%d", s.Position, s.Field),
	} {
		out = append(out, HUDLine{Text: t, X: x, Y: y, Scale: HUDScale, Color: white})
		y += lineHeight(HUDScale)
	}

	// Standings under the left column.
	y += lineHeight(HUDScale) / 2
	for i, id := range s.Standings {
		col := white
		if id == sim.PlayerID {
			col = Palette.Countdown
		}
		t := fmt.Sprintf("%d. %s", i+1, VehicleName(id))
		out = append(out, HUDLine{Text: t, X: x, Y: y, Scale: HUDScale * 0.75, Color: col})
		y += lineHeight(HUDScale * 0.75)
	}

	// Right column.
	best := "--:--.---"
	if s.HasBestLap {
		best = FormatTime(s.BestLap)
	}
	y = 10
	for _, t := range []string{
		fmt.Sprintf("SPEED: %d MPH", SpeedMPH(s.SpeedFraction)),
		"GEAR: " + GearLabel(s.Gear),
		"BEST LAP: " + best,
	} {
		out = append(out, HUDLine{Text: t, X: fbW - 10 - TextWidth(t, HUDScale), Y: y, Scale: HUDScale, Color: white})
		y += lineHeight(HUDScale)
	}

	switch s.State {
	case sim.StateCountdown:
		digit := fmt.Sprintf("%d", s.Countdown)
		out = append(out, centred(digit, fbW, fbH/2-lineHeight(CountdownScale)/2, CountdownScale, Palette.Countdown))

	case sim.StateRacing:
		if s.RaceTime < goFor {
			out = append(out, centred("GO!", fbW, fbH/2-lineHeight(CountdownScale)/2, CountdownScale, Palette.Countdown))
		}
		if s.OffTrack {
			out = append(out, centred("OFF TRACK", fbW, fbH-80, HUDScale*1.5, Palette.Warning))
		}

	case sim.StateFinished:
		cy := fbH/2 - 120
		out = append(out, centred("RACE COMPLETE!", fbW, cy, BannerScale, Palette.Countdown))
		cy += lineHeight(BannerScale) + 10
		for _, t := range []string{
			"Total Time: " + FormatTime(s.TotalTime),
			"Final Position: " + Ordinal(s.Position),
			"Best Lap: " + best,
		} {
			out = append(out, centred(t, fbW, cy, HUDScale*1.5, white))
			cy += lineHeight(HUDScale * 1.5)
		}
		cy += lineHeight(HUDScale)
		out = append(out, centred("Press ENTER to restart", fbW, cy, HUDScale, white))
	}
	return out
}
