// Package mixer models the analog stage between the M6295 DAC and the
// cabinet speaker.
package mixer

import "math"

// Stage processes one stereo frame.
type Stage interface {
	Process(l, r float32) (float32, float32)
	Reset()
}

// Chain runs stages in order and applies a master gain at the end.
type Chain struct {
	stages []Stage
	gain   float32
}

func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages, gain: 1}
}

func (c *Chain) SetGain(g float32) {
	if g < 0 {
		g = 0
	}
	c.gain = g
}

func (c *Chain) Gain() float32 { return c.gain }

func (c *Chain) Process(l, r float32) (float32, float32) {
	for _, s := range c.stages {
		l, r = s.Process(l, r)
	}
	return l * c.gain, r * c.gain
}

// ProcessBuffer runs the chain over interleaved stereo samples in place.
func (c *Chain) ProcessBuffer(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		dst[i], dst[i+1] = c.Process(dst[i], dst[i+1])
	}
}

func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Lowpass is a one-pole RC filter.
type Lowpass struct {
	alpha    float32
	stL, stR float32
}

func NewLowpass(sampleRate int, cutoffHz float64) *Lowpass {
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	dt := 1.0 / float64(sampleRate)
	return &Lowpass{alpha: float32(dt / (rc + dt))}
}

func (f *Lowpass) Process(l, r float32) (float32, float32) {
	f.stL += f.alpha * (l - f.stL)
	f.stR += f.alpha * (r - f.stR)
	return f.stL, f.stR
}

func (f *Lowpass) Reset() { f.stL, f.stR = 0, 0 }

// Limiter pulls peaks above ceiling back down with a fast attack and a
// slow release.
type Limiter struct {
	ceiling float32
	attack  float32
	release float32
	env     float32
}

// NewLimiter takes the ceiling in dBFS and attack/release times in ms.
func NewLimiter(sampleRate int, ceilingDB, attackMs, releaseMs float64) *Limiter {
	sr := float64(sampleRate)
	return &Limiter{
		ceiling: float32(math.Pow(10, ceilingDB/20)),
		attack:  float32(1 - math.Exp(-1/(attackMs*sr/1000))),
		release: float32(1 - math.Exp(-1/(releaseMs*sr/1000))),
	}
}

func (lim *Limiter) Process(l, r float32) (float32, float32) {
	peak := float32(math.Max(math.Abs(float64(l)), math.Abs(float64(r))))
	if peak > lim.env {
		lim.env += lim.attack * (peak - lim.env)
	} else {
		lim.env += lim.release * (peak - lim.env)
	}
	if lim.env <= lim.ceiling || lim.ceiling <= 0 {
		return l, r
	}
	g := lim.ceiling / lim.env
	return l * g, r * g
}

func (lim *Limiter) Reset() { lim.env = 0 }

// NewBoardChain returns the default output stage: the board's RC filter
// followed by a limiter just under full scale.
func NewBoardChain(sampleRate int) *Chain {
	return NewChain(
		NewLowpass(sampleRate, 3200),
		NewLimiter(sampleRate, -1, 1, 120),
	)
}
