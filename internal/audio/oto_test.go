package audio

import (
	"errors"
	"testing"
)

type fakeOutput struct {
	playing bool
	closes  int
	err     error
}

func (o *fakeOutput) Play()           { o.playing = true }
func (o *fakeOutput) Pause()          { o.playing = false }
func (o *fakeOutput) IsPlaying() bool { return o.playing }
func (o *fakeOutput) Close() error {
	o.closes++
	o.playing = false
	return o.err
}

func TestOtoStopClosesUnstartedPlayer(t *testing.T) {
	out := &fakeOutput{}
	p := &otoPlayer{player: out, reader: NewStreamReader(&rampSource{}, nil)}
	if err := p.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.closes != 1 {
		t.Fatalf("closes = %d, want 1", out.closes)
	}
	if err := p.Stop(); err != nil || out.closes != 1 {
		t.Fatalf("second stop: err=%v closes=%d", err, out.closes)
	}
	p.Play()
	if out.playing || p.IsPlaying() {
		t.Fatalf("stopped player resumed")
	}
}

func TestOtoStopReportsCloseError(t *testing.T) {
	closeErr := errors.New("device gone")
	out := &fakeOutput{err: closeErr}
	p := &otoPlayer{player: out, reader: NewStreamReader(&rampSource{}, nil)}
	p.Play()
	if !p.IsPlaying() {
		t.Fatalf("player should be playing")
	}
	if err := p.Stop(); !errors.Is(err, closeErr) {
		t.Fatalf("stop error = %v, want %v", err, closeErr)
	}
	if out.closes != 1 {
		t.Fatalf("closes = %d, want 1", out.closes)
	}
}
