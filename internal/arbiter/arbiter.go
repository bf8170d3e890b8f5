// Package arbiter picks an M6295 voice for a new phrase and builds the
// command bytes that start it.
package arbiter

// NumChannels is the number of voices the M6295 plays at once.
const NumChannels = 4

const (
	// StopAll halts every voice. Bits 3..6 are the stop mask.
	StopAll uint8 = 0x78
	// phraseSelect marks the first byte of a start sequence.
	phraseSelect uint8 = 0x80
)

// Second byte of a start sequence: voice bit in the high nibble,
// attenuation step 1 in the low nibble.
var selectors = [NumChannels]uint8{0x11, 0x21, 0x41, 0x81}

// SelectChannel returns the lowest voice whose busy bit is clear in status.
// Voice 0 always wins when free; there is no rotation between calls.
func SelectChannel(status uint8) (int, bool) {
	for ch := 0; ch < NumChannels; ch++ {
		if status&(1<<ch) == 0 {
			return ch, true
		}
	}
	return -1, false
}

// Selector returns the voice select byte for ch. ch must be in [0, NumChannels).
func Selector(ch int) uint8 { return selectors[ch] }

// Trigger returns the two writes that start sample on ch.
func Trigger(ch int, sample uint8) [2]uint8 {
	return [2]uint8{phraseSelect | sample, selectors[ch]}
}
