package okim6295

import "math"

const maxPhrases = 128

// SynthBank generates a distinct placeholder phrase for every phrase number
// so command traffic can be heard without the game's sample ROMs. Phrase 0
// is empty, as on real boards.
type SynthBank struct {
	phrases [maxPhrases][]float32
}

func NewSynthBank(chipRate float64) *SynthBank {
	b := &SynthBank{}
	for n := 1; n < maxPhrases; n++ {
		b.phrases[n] = synthPhrase(uint8(n), chipRate)
	}
	return b
}

func (b *SynthBank) Phrase(n uint8) ([]float32, bool) {
	if int(n) >= maxPhrases || b.phrases[n] == nil {
		return nil, false
	}
	return b.phrases[n], true
}

// Phrases with n%3 == 0 are noise bursts, the rest decaying squares whose
// pitch and length follow the phrase number.
func synthPhrase(n uint8, chipRate float64) []float32 {
	seconds := 0.08 + float64(n%8)*0.04
	frames := int(seconds * chipRate)
	out := make([]float32, frames)
	freq := 110 * math.Pow(2, float64(n%36)/12)
	decay := 4.0 / float64(frames)
	lfsr := uint16(0x7fff ^ uint16(n))
	var phase float64
	for i := range out {
		env := math.Exp(-float64(i) * decay)
		var s float64
		if n%3 == 0 {
			bit := (lfsr ^ (lfsr >> 1)) & 1
			lfsr = (lfsr >> 1) | (bit << 14)
			s = float64(lfsr&1)*2 - 1
		} else {
			if phase < 0.5 {
				s = 1
			} else {
				s = -1
			}
			phase += freq / chipRate
			phase -= math.Floor(phase)
		}
		out[i] = float32(s * env)
	}
	return out
}

// BankFunc adapts a function to Bank.
type BankFunc func(n uint8) ([]float32, bool)

func (f BankFunc) Phrase(n uint8) ([]float32, bool) { return f(n) }
