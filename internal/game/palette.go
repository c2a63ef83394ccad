package game

import "racer/internal/sim"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Float returns the colour as 0..1 components.
func (c RGB) Float() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// fromSim converts a simulation paint colour to 8-bit.
func fromSim(c sim.RGB) RGB {
	return RGB{
		R: uint8(clampF(float64(c.R), 0, 1) * 255),
		G: uint8(clampF(float64(c.G), 0, 1) * 255),
		B: uint8(clampF(float64(c.B), 0, 1) * 255),
	}
}

var Palette = struct {
	Sky       RGB
	Ground    RGB
	Road      RGB
	CheckerA  RGB
	CheckerB  RGB
	Centre    RGB
	Guardrail RGB
	Mountain  RGB
	Trunk     RGB
	Leaves    RGB
	Glass     RGB
	Tyre      RGB
	SparkHot  RGB
	SparkCool RGB
	Dust      RGB

	Text      RGB
	Countdown RGB
	Warning   RGB
}{
	Sky:       RGB{R: 128, G: 178, B: 255},
	Ground:    RGB{R: 0, G: 153, B: 0},
	Road:      RGB{R: 102, G: 102, B: 102},
	CheckerA:  RGB{R: 255, G: 255, B: 255},
	CheckerB:  RGB{R: 0, G: 0, B: 0},
	Centre:    RGB{R: 255, G: 255, B: 0},
	Guardrail: RGB{R: 153, G: 153, B: 153},
	Mountain:  RGB{R: 128, G: 128, B: 128},
	Trunk:     RGB{R: 128, G: 89, B: 13},
	Leaves:    RGB{R: 0, G: 204, B: 0},
	Glass:     RGB{R: 26, G: 26, B: 178},
	Tyre:      RGB{R: 26, G: 26, B: 26},
	SparkHot:  RGB{R: 255, G: 230, B: 140},
	SparkCool: RGB{R: 255, G: 120, B: 30},
	Dust:      RGB{R: 150, G: 120, B: 80},

	Text:      RGB{R: 255, G: 255, B: 255},
	Countdown: RGB{R: 255, G: 255, B: 0},
	Warning:   RGB{R: 255, G: 80, B: 80},
}
