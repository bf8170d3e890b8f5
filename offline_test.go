package okisnd

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"
	"testing"
	"time"

	intcue "github.com/cbegin/okisnd-go/internal/cue"
)

func energy(samples []float32) float64 {
	var e float64
	for _, s := range samples {
		e += math.Abs(float64(s))
	}
	return e
}

func TestRenderCueProducesAudio(t *testing.T) {
	c := intcue.Sequence([]uint8{0x10, 0x11, 0x12, 0x13, 0x14}, 0)
	r, err := RenderCue(TitleKnuckleBash, c, 48000, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(r.Samples) != 48000/5*2 {
		t.Fatalf("got %d samples", len(r.Samples))
	}
	if energy(r.Samples) == 0 {
		t.Fatalf("expected non-silent render")
	}
	// Five simultaneous commands against four voices: the fifth is dropped.
	wantCh := []int{0, 1, 2, 3, -1}
	for i, ev := range r.Trace {
		if ev.Channel != wantCh[i] {
			t.Fatalf("trace %d = %+v, want channel %d", i, ev, wantCh[i])
		}
	}
	if r.Trace[4].Outcome != OutcomeDropped {
		t.Fatalf("fifth command outcome = %v", r.Trace[4].Outcome)
	}
}

func TestRenderCueStopAllSilences(t *testing.T) {
	c := &intcue.Cue{Events: []intcue.Event{
		{At: 0, Command: 0x10},
		{At: 20 * time.Millisecond, Command: 0},
	}}
	r, err := RenderCue(TitleKnuckleBash, c, 48000, 100*time.Millisecond, WithBoardFilter(false))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	before := r.Samples[:960*2]
	after := r.Samples[1000*2:]
	if energy(before) == 0 {
		t.Fatalf("expected audio before stop")
	}
	if energy(after) != 0 {
		t.Fatalf("expected silence after stop-all")
	}
}

func TestRenderCueUnsupportedTitleIsSilent(t *testing.T) {
	c := intcue.Sequence([]uint8{0x10, 0x20, 0x30}, 10*time.Millisecond)
	r, err := RenderCue(TitleDogyuun, c, 48000, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if energy(r.Samples) != 0 {
		t.Fatalf("dogyuun render should be silent")
	}
	for _, ev := range r.Trace {
		if ev.Outcome != OutcomeUnsupported {
			t.Fatalf("trace = %+v", ev)
		}
	}
}

func TestRenderCueDeterministic(t *testing.T) {
	c := intcue.Sequence([]uint8{0x23, 0x24, 0x25}, 30*time.Millisecond)
	a, _ := RenderCue(TitleBatsugun, c, 44100, 100*time.Millisecond)
	b, _ := RenderCue(TitleBatsugun, c, 44100, 100*time.Millisecond)
	wa := EncodeWAVFloat32LE(a.Samples, 44100, 2)
	wb := EncodeWAVFloat32LE(b.Samples, 44100, 2)
	if !bytes.Equal(wa, wb) {
		t.Fatalf("renders differ")
	}
}

func TestEncodeWAVHeader(t *testing.T) {
	wav := EncodeWAVFloat32LE([]float32{0.5, -0.5}, 48000, 2)
	if len(wav) != 52 {
		t.Fatalf("wav length = %d", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Fatalf("bad chunk ids")
	}
	if binary.LittleEndian.Uint16(wav[20:]) != 3 || binary.LittleEndian.Uint32(wav[24:]) != 48000 {
		t.Fatalf("bad fmt chunk")
	}
	if binary.LittleEndian.Uint32(wav[4:]) != 44 || binary.LittleEndian.Uint16(wav[32:]) != 8 || binary.LittleEndian.Uint32(wav[40:]) != 8 {
		t.Fatalf("bad sizes")
	}
	if math.Float32frombits(binary.LittleEndian.Uint32(wav[48:])) != -0.5 {
		t.Fatalf("bad sample data")
	}
}

func TestRenderCueRejectsBadTiming(t *testing.T) {
	cmds := []uint8{0x10, 0x11, 0x12}
	if _, err := RenderCue(TitleKnuckleBash, intcue.Sequence(cmds, -time.Second), 48000, time.Second); err == nil {
		t.Fatalf("negative gap should fail")
	}
	if _, err := RenderCue(TitleKnuckleBash, intcue.Sequence(cmds, time.Millisecond), 48000, -2*time.Second); err == nil {
		t.Fatalf("negative tail should fail")
	}
	if _, err := RenderCue(TitleKnuckleBash, intcue.Sequence(cmds, intcue.MaxOffset), 48000, 0); err == nil {
		t.Fatalf("render past MaxRenderDuration should fail")
	}
	late := &intcue.Cue{Events: []intcue.Event{{At: time.Duration(math.MaxInt64), Command: 0x10}}}
	if _, err := RenderCue(TitleKnuckleBash, late, 48000, time.Second); err == nil {
		t.Fatalf("overflowing offset should fail")
	}
	if _, err := RenderCue(TitleKnuckleBash, intcue.Sequence(cmds, 0), 1<<30, 0); err == nil {
		t.Fatalf("absurd sample rate should fail")
	}
}

func TestRenderCueSortsEvents(t *testing.T) {
	sorted := &intcue.Cue{Events: []intcue.Event{
		{At: 0, Command: 0x10},
		{At: 20 * time.Millisecond, Command: 0x11},
		{At: 40 * time.Millisecond, Command: 0},
	}}
	shuffled := &intcue.Cue{Events: []intcue.Event{
		sorted.Events[2], sorted.Events[0], sorted.Events[1],
	}}
	a, err := RenderCue(TitleKnuckleBash, sorted, 48000, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := RenderCue(TitleKnuckleBash, shuffled, 48000, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(EncodeWAVFloat32LE(a.Samples, 48000, 2), EncodeWAVFloat32LE(b.Samples, 48000, 2)) {
		t.Fatalf("shuffled cue rendered differently")
	}
	if !slices.Equal(a.Trace, b.Trace) {
		t.Fatalf("trace = %+v, want %+v", b.Trace, a.Trace)
	}
	if shuffled.Events[0].Command != 0 {
		t.Fatalf("RenderCue reordered the caller's cue")
	}
}
