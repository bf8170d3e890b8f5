// Package okim6295 models the command port and voices of an OKI M6295
// ADPCM player closely enough to drive it from sound commands.
package okim6295

const (
	NumVoices    = 4
	DefaultClock = 1000000

	// The SS pin selects the clock divider.
	dividerHigh = 132
	dividerLow  = 165
)

// Attenuation steps of 3 dB, scaled to 0x20. Steps past 8 are silent.
var volumeTable = [16]float32{
	0x20 / 32.0, 0x16 / 32.0, 0x10 / 32.0, 0x0b / 32.0,
	0x08 / 32.0, 0x06 / 32.0, 0x04 / 32.0, 0x03 / 32.0,
	0x02 / 32.0, 0, 0, 0, 0, 0, 0, 0,
}

// Bank supplies decoded phrases at the chip's native rate.
type Bank interface {
	Phrase(n uint8) ([]float32, bool)
}

type Params struct {
	Clock   int
	PinHigh bool // SS pin high selects the /132 divider
	Gain    float32
}

func DefaultParams() Params {
	return Params{Clock: DefaultClock, PinHigh: true, Gain: 0.8}
}

type voice struct {
	playing bool
	phrase  uint8
	pcm     []float32
	pos     float64
	volume  float32
}

// Stats counts command port traffic since the last Reset.
type Stats struct {
	Starts      int
	BusyRejects int
	Stops       int
	Unknown     int
}

// Chip is not safe for concurrent use; callers serialize access to
// WriteCommand, ReadStatus and rendering.
type Chip struct {
	bank     Bank
	outRate  int
	chipRate float64
	step     float64
	gain     float32

	voices  [NumVoices]voice
	latched bool
	phrase  uint8
	stats   Stats
}

// ChipRate returns the native playback rate for p in Hz.
func ChipRate(p Params) float64 {
	clock := p.Clock
	if clock <= 0 {
		clock = DefaultClock
	}
	if p.PinHigh {
		return float64(clock) / dividerHigh
	}
	return float64(clock) / dividerLow
}

func New(outRate int, bank Bank, p Params) *Chip {
	chipRate := ChipRate(p)
	return &Chip{
		bank:     bank,
		outRate:  outRate,
		chipRate: chipRate,
		step:     chipRate / float64(outRate),
		gain:     p.Gain,
	}
}

func (c *Chip) ChipRate() float64 { return c.chipRate }

func (c *Chip) Stats() Stats { return c.stats }

// ReadStatus returns the busy flags of voices 0..3 in bits 0..3. The upper
// nibble reads as ones.
func (c *Chip) ReadStatus() uint8 {
	status := uint8(0xF0)
	for i := range c.voices {
		if c.voices[i].playing {
			status |= 1 << i
		}
	}
	return status
}

// WriteCommand feeds one byte to the command port. A byte with bit 7 set
// latches a phrase; the next byte starts it on the voices in its high
// nibble at the attenuation in its low nibble. Any other byte stops the
// voices in bits 3..6.
func (c *Chip) WriteCommand(b uint8) {
	if c.latched {
		c.latched = false
		mask := b >> 4
		vol := volumeTable[b&0x0f]
		for i := range c.voices {
			if mask&(1<<i) == 0 {
				continue
			}
			v := &c.voices[i]
			if v.playing {
				c.stats.BusyRejects++
				continue
			}
			pcm, ok := c.bank.Phrase(c.phrase)
			if !ok || len(pcm) == 0 {
				c.stats.Unknown++
				continue
			}
			*v = voice{playing: true, phrase: c.phrase, pcm: pcm, volume: vol}
			c.stats.Starts++
		}
		return
	}
	if b&0x80 != 0 {
		c.latched = true
		c.phrase = b & 0x7f
		return
	}
	mask := (b >> 3) & 0x0f
	for i := range c.voices {
		if mask&(1<<i) != 0 && c.voices[i].playing {
			c.voices[i].playing = false
			c.stats.Stops++
		}
	}
}

// Playing returns the phrase on voice i and whether it is still sounding.
func (c *Chip) Playing(i int) (uint8, bool) {
	if i < 0 || i >= NumVoices {
		return 0, false
	}
	v := c.voices[i]
	return v.phrase, v.playing
}

// RenderFrame advances every voice by one output sample and returns the
// mono mix.
func (c *Chip) RenderFrame() float32 {
	var mix float32
	for i := range c.voices {
		v := &c.voices[i]
		if !v.playing {
			continue
		}
		idx := int(v.pos)
		if idx >= len(v.pcm) {
			v.playing = false
			continue
		}
		mix += v.pcm[idx] * v.volume
		v.pos += c.step
		if int(v.pos) >= len(v.pcm) {
			v.playing = false
		}
	}
	return mix * c.gain / NumVoices
}

// Process fills interleaved stereo dst with the mono chip output.
func (c *Chip) Process(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		s := c.RenderFrame()
		dst[i] = s
		dst[i+1] = s
	}
}

func (c *Chip) Reset() {
	c.voices = [NumVoices]voice{}
	c.latched = false
	c.phrase = 0
	c.stats = Stats{}
}
